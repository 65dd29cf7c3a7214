package banner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xtding233/gacha-server/internal/gacha"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateFile checks every record and returns the converted banners keyed by type. All
// problems are reported together. A defaults block is folded into the records first.
func ValidateFile(f File) (map[int]gacha.Banner, error) {
	var errs []string

	f = f.resolved()

	if len(f.Banners) == 0 {
		errs = append(errs, "no banners defined")
	}
	if err := validate.Struct(f); err != nil {
		errs = append(errs, formatValidationError(err)...)
	}

	out := make(map[int]gacha.Banner, len(f.Banners))
	for i, c := range f.Banners {
		b := c.ToBanner()
		if err := gacha.ValidateBanner(b); err != nil {
			errs = append(errs, fmt.Sprintf("banners[%d]: %v", i, err))
		}
		if _, dup := out[b.Type]; dup {
			errs = append(errs, fmt.Sprintf("banners[%d]: duplicate gachaType %d", i, b.Type))
		}
		out[b.Type] = b
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return out, nil
}

func formatValidationError(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "File.")
		if e.Param() != "" {
			out = append(out, fmt.Sprintf("%s must satisfy %s=%s", field, e.Tag(), e.Param()))
		} else {
			out = append(out, fmt.Sprintf("%s must satisfy %s", field, e.Tag()))
		}
	}
	return out
}
