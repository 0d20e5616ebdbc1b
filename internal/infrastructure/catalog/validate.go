package catalog

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vegist/backend/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	v.RegisterStructValidation(productStructLevel, domain.Product{})
	return v
}

// productStructLevel checks the rules struct tags cannot express: both prices parse
// and price never exceeds originalPrice
func productStructLevel(sl validator.StructLevel) {
	p := sl.Current().Interface().(domain.Product)

	price, err := domain.ParseMoney(p.Price)
	if err != nil {
		sl.ReportError(p.Price, "price", "Price", "money", "")
		return
	}
	if p.OriginalPrice == "" {
		return
	}
	original, err := domain.ParseMoney(p.OriginalPrice)
	if err != nil {
		sl.ReportError(p.OriginalPrice, "originalPrice", "OriginalPrice", "money", "")
		return
	}
	if price.GreaterThan(original) {
		sl.ReportError(p.Price, "price", "Price", "ltefield", "originalPrice")
	}
}

// ValidateProducts checks every record and that ids are unique
func ValidateProducts(products []domain.Product) error {
	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("%w: product %d (%s): %s", domain.ErrInvalidCatalog, i, p.ID, describe(err))
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %s", domain.ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

func describe(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
