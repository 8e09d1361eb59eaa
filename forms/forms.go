// Package forms holds the local, synchronous validation the create/edit
// modals run before anything reaches the network. Failures never leave the
// process; remote rejections surface separately through the same banner.
package forms

import (
	"regexp"
	"strings"

	"gamemart/models"
)

// Errors maps field name to message. Empty means the form may submit.
type Errors map[string]string

func (e Errors) Error() string { return "forms: validation failed" }

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NormalizeSlug folds free text into the slug format as the user types:
// lowercase, whitespace runs become single hyphens, everything else is
// dropped ("Mobile Legends!" → "mobile-legends").
func NormalizeSlug(s string) string {
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), "-")
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(collapseHyphens(b.String()), "-")
}

func collapseHyphens(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

// ValidSlug reports whether s already satisfies the slug format; slugs with
// uppercase letters or spaces fail.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

func ValidateProduct(in models.ProductInput) Errors {
	errs := Errors{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Product name is required"
	}
	if strings.TrimSpace(in.ImgURL) == "" {
		errs["img_url"] = "Image URL is required"
	}
	if in.Price <= 0 {
		errs["price"] = "Price must be greater than 0"
	}
	// fake_price renders as the struck-through original price; it only
	// makes sense above the selling price.
	if in.FakePrice != 0 && in.FakePrice <= in.Price {
		errs["fake_price"] = "Original price must exceed the selling price"
	}
	if in.ServiceID == 0 {
		errs["service_id"] = "Service is required"
	}
	return errs
}

func ValidateService(in models.ServiceInput) Errors {
	errs := Errors{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Service name is required"
	}
	if strings.TrimSpace(in.ImgURL) == "" {
		errs["img_url"] = "Image URL is required"
	}
	return errs
}

func ValidateGame(in models.GameInput) Errors {
	errs := Errors{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Game name is required"
	}
	if strings.TrimSpace(in.LogoURL) == "" {
		errs["logo_url"] = "Logo URL is required"
	}
	slug := strings.TrimSpace(in.Slug)
	switch {
	case slug == "":
		errs["slug"] = "Slug is required"
	case !ValidSlug(slug):
		errs["slug"] = "Slug must be lowercase alphanumeric with hyphens"
	}
	if in.ServiceID == 0 {
		errs["service_id"] = "Service is required"
	}
	return errs
}
