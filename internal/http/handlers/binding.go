package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldLabel)
	}
}

// fieldLabel names a request field in validation messages: the label tag
// when present, otherwise the json key.
func fieldLabel(f reflect.StructField) string {
	if label := f.Tag.Get("label"); label != "" {
		return label
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// bind decodes the JSON or form body into req and runs its binding rules.
// It writes the 400 response itself and reports whether the handler may go on.
func (h *Handler) bind(c *gin.Context, req any) bool {
	err := c.ShouldBind(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		h.respondError(c, verrs)
		return false
	}
	badRequest(c)
	return false
}

// validationMessage turns the first failed rule into a sentence naming the field.
func validationMessage(fe validator.FieldError) string {
	name := fe.Field()
	tag := fe.Tag()
	// for alternatives such as "eq=|oneof=a b" the last rule is the meaningful one
	if i := strings.LastIndexByte(tag, '|'); i >= 0 {
		tag = tag[i+1:]
	}
	tag, _, _ = strings.Cut(tag, "=")

	switch tag {
	case "required":
		return name + " is required"
	case "max":
		return name + " must be at most " + fe.Param() + " characters"
	case "min":
		return name + " must be at least " + fe.Param() + " characters"
	case "gt":
		return name + " must be a positive integer"
	case "oneof":
		return name + " must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "datetime":
		return name + " must be in YYYY-MM-DD format"
	case "hexcolor", "len":
		return name + " must be a hex value like #1A2B3C"
	case "email":
		return name + " must be a valid email address"
	}
	return "Invalid " + name
}
