// FILE: wordfence/config/item.go
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ArgumentKind describes how an option is supplied and what canonical type it resolves to.
type ArgumentKind int

const (
	// KindFlag is a boolean flag; absence resolves to its default (normally false)
	KindFlag ArgumentKind = iota
	// KindOptionalFlag is a tri-state flag that supports explicit negation (--no-<name>)
	KindOptionalFlag
	// KindOption carries a single scalar value
	KindOption
	// KindOptionRepeatable accumulates values into an ordered sequence
	KindOptionRepeatable
)

func (k ArgumentKind) String() string {
	switch k {
	case KindFlag:
		return "FLAG"
	case KindOptionalFlag:
		return "OPTIONAL_FLAG"
	case KindOption:
		return "OPTION"
	case KindOptionRepeatable:
		return "OPTION_REPEATABLE"
	default:
		return fmt.Sprintf("ArgumentKind(%d)", int(k))
	}
}

// Context limits the sources an option may be read from.
type Context int

const (
	// ContextAll options are read from every source
	ContextAll Context = iota
	// ContextCLI options are only read from the command line
	ContextCLI
	// ContextConfig options are only read from persistent sources (file, environment)
	ContextConfig
)

func (c Context) String() string {
	switch c {
	case ContextAll:
		return "ALL"
	case ContextCLI:
		return "CLI"
	case ContextConfig:
		return "CONFIG"
	default:
		return fmt.Sprintf("Context(%d)", int(c))
	}
}

// allowsCLI reports whether the command line may supply this option.
func (c Context) allowsCLI() bool {
	return c != ContextConfig
}

// allowsPersistent reports whether files and the environment may supply this option.
func (c Context) allowsPersistent() bool {
	return c != ContextCLI
}

// ValueType selects the scalar type of an OPTION.
type ValueType int

const (
	TypeString ValueType = iota
	TypeInt
	TypeFloat
)

// Encoding marks a default literal that must be decoded before use.
type Encoding int

const (
	EncodingNone Encoding = iota
	// EncodingBase64 defaults are base64 text decoded into a string (e.g. "AA==" is a NUL byte)
	EncodingBase64
)

// ItemDefinition declares one configurable option.
type ItemDefinition struct {
	Name            string `validate:"required,kebab"`
	Description     string
	ShortName       string       `validate:"omitempty,len=1"`
	Kind            ArgumentKind `validate:"gte=0,lte=3"`
	Context         Context      `validate:"gte=0,lte=2"`
	ValueType       ValueType    `validate:"gte=0,lte=2"`
	Default         any
	DefaultEncoding Encoding `validate:"gte=0,lte=1"`
	Separator       string
	ValidOptions    []string `validate:"omitempty,dive,required"`
	Hidden          bool
}

// PropertyName is the identifier used on the resolved configuration object.
func (d ItemDefinition) PropertyName() string {
	return strings.ReplaceAll(d.Name, "-", "_")
}

// HasSeparator reports whether single string values are split into sequences.
func (d ItemDefinition) HasSeparator() bool {
	return d.Separator != ""
}

// IsRepeatable reports whether the option resolves to a sequence.
func (d ItemDefinition) IsRepeatable() bool {
	return d.Kind == KindOptionRepeatable
}

// IsBoolean reports whether the option is a flag of either kind.
func (d ItemDefinition) IsBoolean() bool {
	return d.Kind == KindFlag || d.Kind == KindOptionalFlag
}

// NegationName is the CLI flag that explicitly disables an optional flag.
func (d ItemDefinition) NegationName() string {
	return "no-" + d.Name
}

var kebabPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var definitionValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("kebab", func(fl validator.FieldLevel) bool {
		return kebabPattern.MatchString(fl.Field().String())
	})
	return v
})

// Validate checks that the declaration is internally consistent.
// Besides the struct rules it verifies the separator of repeatable options and
// that the default decodes, coerces and belongs to ValidOptions.
func (d ItemDefinition) Validate() error {
	var problems []error

	if err := definitionValidator().Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				problems = append(problems, fmt.Errorf("field %s fails %q rule", fe.Field(), fe.Tag()))
			}
		} else {
			problems = append(problems, err)
		}
	}

	if d.IsRepeatable() && !d.HasSeparator() {
		problems = append(problems, fmt.Errorf("repeatable option requires a separator"))
	}
	if d.ValueType != TypeString && d.Kind != KindOption {
		problems = append(problems, fmt.Errorf("value type only applies to %s", KindOption))
	}

	if len(problems) == 0 {
		if _, err := canonicalDefault(d); err != nil {
			problems = append(problems, fmt.Errorf("default: %w", err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w %q: %w", ErrInvalidDefinition, d.Name, errors.Join(problems...))
	}
	return nil
}
