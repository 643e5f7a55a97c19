package lang

// Dialog string keys exposed to the editor frontend.
const (
	KeyDialogTitle        = "dialog_title"
	KeyEnterURL           = "enter_url"
	KeyBrowseRepositories = "browse_repositories"
	KeyEnterAlt           = "enter_alt"
	KeyPresentation       = "presentation"
	KeySize               = "size"
	KeyWidth              = "width"
	KeyHeight             = "height"
	KeyConstrain          = "constrain"
	KeySizeOriginal       = "size_original"
	KeySizeCustom         = "size_custom"
	KeyCustomStyle        = "custom_style"
	KeyClasses            = "classes"
	KeySave               = "save"
	KeyDeleteImage        = "delete_image"
	KeyConfirmDelete      = "confirm_delete"
	KeyAltRequired        = "alt_required"
	KeyURLRequired        = "url_required"
	KeyInvalidSize        = "invalid_size"
)

var catalogs = map[string]map[string]string{
	"en": {
		KeyDialogTitle:        "Image details",
		KeyEnterURL:           "Enter URL",
		KeyBrowseRepositories: "Browse repositories...",
		KeyEnterAlt:           "Describe this image for someone who cannot see it",
		KeyPresentation:       "This image is decorative only",
		KeySize:               "Size",
		KeyWidth:              "Width",
		KeyHeight:             "Height",
		KeyConstrain:          "Keep proportions",
		KeySizeOriginal:       "Original size",
		KeySizeCustom:         "Custom size",
		KeyCustomStyle:        "Custom style",
		KeyClasses:            "Classes",
		KeySave:               "Save image",
		KeyDeleteImage:        "Delete image",
		KeyConfirmDelete:      "Are you sure you want to delete this image?",
		KeyAltRequired:        "An image description is required unless the image is decorative",
		KeyURLRequired:        "An image URL is required",
		KeyInvalidSize:        "Width and height must be numbers or percentages",
	},
	"de": {
		KeyDialogTitle:        "Bilddetails",
		KeyEnterURL:           "URL eingeben",
		KeyBrowseRepositories: "Repositories durchsuchen...",
		KeyEnterAlt:           "Beschreiben Sie dieses Bild für jemanden, der es nicht sehen kann",
		KeyPresentation:       "Dieses Bild ist nur dekorativ",
		KeySize:               "Größe",
		KeyWidth:              "Breite",
		KeyHeight:             "Höhe",
		KeyConstrain:          "Proportionen beibehalten",
		KeySizeOriginal:       "Originalgröße",
		KeySizeCustom:         "Benutzerdefinierte Größe",
		KeyCustomStyle:        "Benutzerdefinierter Stil",
		KeyClasses:            "Klassen",
		KeySave:               "Bild speichern",
		KeyDeleteImage:        "Bild löschen",
		KeyConfirmDelete:      "Möchten Sie dieses Bild wirklich löschen?",
		KeyAltRequired:        "Eine Bildbeschreibung ist erforderlich, sofern das Bild nicht dekorativ ist",
		KeyURLRequired:        "Eine Bild-URL ist erforderlich",
		KeyInvalidSize:        "Breite und Höhe müssen Zahlen oder Prozentwerte sein",
	},
	"ru": {
		KeyDialogTitle:        "Параметры изображения",
		KeyEnterURL:           "Введите URL",
		KeyBrowseRepositories: "Выбрать из репозитория...",
		KeyEnterAlt:           "Опишите изображение для тех, кто его не видит",
		KeyPresentation:       "Это изображение является декоративным",
		KeySize:               "Размер",
		KeyWidth:              "Ширина",
		KeyHeight:             "Высота",
		KeyConstrain:          "Сохранять пропорции",
		KeySizeOriginal:       "Исходный размер",
		KeySizeCustom:         "Произвольный размер",
		KeyCustomStyle:        "Пользовательский стиль",
		KeyClasses:            "Классы",
		KeySave:               "Сохранить изображение",
		KeyDeleteImage:        "Удалить изображение",
		KeyConfirmDelete:      "Вы действительно хотите удалить это изображение?",
		KeyAltRequired:        "Описание обязательно, если изображение не является декоративным",
		KeyURLRequired:        "Необходимо указать URL изображения",
		KeyInvalidSize:        "Ширина и высота должны быть числами или процентами",
	},
}

// Lookup returns the localized string for the given key, falling back to
// the bare language and then to the default catalog when a translation is
// missing. Unknown keys return the key itself so missing entries are
// visible rather than silently blank.
func Lookup(code, key string) string {
	normalized, err := Normalize(code)
	if err != nil {
		normalized = Default
	}

	for _, candidate := range []string{normalized, Base(normalized), Default} {
		if catalog, ok := catalogs[candidate]; ok {
			if value, ok := catalog[key]; ok {
				return value
			}
		}
	}
	return key
}

// Strings returns the full dialog catalog for the given language, with
// missing entries filled from the default catalog.
func Strings(code string) map[string]string {
	result := make(map[string]string, len(catalogs[Default]))
	for key := range catalogs[Default] {
		result[key] = Lookup(code, key)
	}
	return result
}
