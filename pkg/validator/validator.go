package validator

import (
	"bytes"
	"mime"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
)

func Init() {
	validate = validator.New()

	sanitizer = bluemonday.UGCPolicy()

	registerCustomValidations(validate)

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("sizefield", validateSizeField)
	v.RegisterValidation("cssclass", validateCSSClass)
	v.RegisterValidation("no_html", validateNoHTML)
}

func Validate(s interface{}) error {
	return validate.Struct(s)
}

func SanitizeHTML(html string) string {
	return sanitizer.Sanitize(html)
}

func SanitizeString(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}

var sizeFieldRegex = regexp.MustCompile(`^\d+(\.\d+)?%?$`)

// validateSizeField accepts empty values, plain non-negative numbers and
// percentage strings such as "50%".
func validateSizeField(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	return sizeFieldRegex.MatchString(value)
}

var cssClassRegex = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

func validateCSSClass(fl validator.FieldLevel) bool {
	return cssClassRegex.MatchString(fl.Field().String())
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

// ValidateCSSClass reports whether the value is a legal CSS class name.
func ValidateCSSClass(name string) bool {
	return cssClassRegex.MatchString(name)
}

// SanitizeInlineStyle strips characters that could break out of a style
// attribute. Declarations are reduced to property:value pairs.
func SanitizeInlineStyle(style string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\\', '{', '}':
			return -1
		}
		return r
	}, style)
	return strings.TrimSpace(cleaned)
}

func SanitizeFilename(filename string) string {
	reg := regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	return reg.ReplaceAllString(filename, "_")
}

func ValidateImageExtension(filename string) bool {
	allowedExtensions := []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".ico"}
	filename = strings.ToLower(filename)

	for _, ext := range allowedExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

func ValidateFileSize(size int64, maxSize int64) bool {
	return size > 0 && size <= maxSize
}

// MIME Type Validation

// ValidateContentType validates that the provided MIME type is in the allowed list
func ValidateContentType(contentType string, allowedMimeTypes []string) bool {
	if contentType == "" || len(allowedMimeTypes) == 0 {
		return false
	}

	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	for _, allowed := range allowedMimeTypes {
		allowed = strings.ToLower(strings.TrimSpace(allowed))

		if mimeType == allowed {
			return true
		}

		// Wildcard match (e.g., "image/*" matches "image/png")
		if strings.HasSuffix(allowed, "/*") {
			prefix := strings.TrimSuffix(allowed, "/*")
			if strings.HasPrefix(mimeType, prefix+"/") {
				return true
			}
		}
	}

	return false
}

// DetectFileType attempts to detect the actual MIME type from file content.
// Returns the detected MIME type or empty string if detection fails.
func DetectFileType(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	if bytes.HasPrefix(data, []byte{0x89, 0x50, 0x4E, 0x47}) {
		return "image/png"
	}
	if bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}) {
		return "image/jpeg"
	}
	if bytes.HasPrefix(data, []byte{0x47, 0x49, 0x46, 0x38}) {
		return "image/gif"
	}
	if bytes.HasPrefix(data, []byte{0x52, 0x49, 0x46, 0x46}) && len(data) > 12 &&
		bytes.HasPrefix(data[8:], []byte{0x57, 0x45, 0x42, 0x50}) {
		return "image/webp"
	}
	if bytes.HasPrefix(data, []byte("<?xml")) || bytes.HasPrefix(data, []byte("<svg")) {
		return "image/svg+xml"
	}

	return ""
}

// ValidateImageContentType validates image MIME types
func ValidateImageContentType(contentType string) bool {
	allowedMimeTypes := []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/svg+xml",
		"image/x-icon",
	}
	return ValidateContentType(contentType, allowedMimeTypes)
}
