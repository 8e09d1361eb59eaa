package filter

import "gamemart/models"

// Per-table specs. Field lists match what each dashboard table searches.

func Users() Spec[models.User] {
	return Spec[models.User]{
		SearchFields: func(u models.User) []string {
			return []string{u.Username, FormatID(u.ID), u.PhoneNumber}
		},
	}
}

// WalletUsers is the user picker on the wallet screen: admins excluded,
// searched by username and phone number only.
func WalletUsers() Spec[models.User] {
	return Spec[models.User]{
		Baseline: func(u models.User) bool { return !u.IsAdmin },
		SearchFields: func(u models.User) []string {
			return []string{u.Username, u.PhoneNumber}
		},
	}
}

func Products() Spec[models.Product] {
	return Spec[models.Product]{
		SearchFields: func(p models.Product) []string {
			return []string{p.Name, FormatID(p.ID)}
		},
		Categories: map[string]func(models.Product) bool{
			"account":   productService("account"),
			"coin":      productService("coin"),
			"sold":      func(p models.Product) bool { return p.IsSold },
			"available": func(p models.Product) bool { return !p.IsSold },
		},
	}
}

func productService(key string) func(models.Product) bool {
	return func(p models.Product) bool {
		return p.Service != nil && ServiceKey(p.Service.Name) == key
	}
}

// Orders are filtered through their ordered product: by product type or by
// its sold state.
func Orders() Spec[models.Order] {
	return Spec[models.Order]{
		SearchFields: func(o models.Order) []string {
			fields := []string{FormatID(o.ID)}
			if o.User != nil {
				fields = append(fields, o.User.Username)
			}
			return fields
		},
		Categories: map[string]func(models.Order) bool{
			"account":   orderProductType("account"),
			"coin":      orderProductType("coin"),
			"sold":      func(o models.Order) bool { return o.Product != nil && o.Product.IsSold },
			"available": func(o models.Order) bool { return o.Product != nil && !o.Product.IsSold },
		},
	}
}

func orderProductType(key string) func(models.Order) bool {
	return func(o models.Order) bool {
		return o.Product != nil && o.Product.ProductType == key
	}
}

func TopUps() Spec[models.TopUp] {
	return Spec[models.TopUp]{
		SearchFields: func(t models.TopUp) []string {
			fields := []string{FormatID(t.ID), t.PaymentMethod}
			if t.User != nil {
				fields = append(fields, t.User.Username)
			}
			return fields
		},
	}
}

func Reviews() Spec[models.Review] {
	return Spec[models.Review]{
		SearchFields: func(r models.Review) []string {
			fields := []string{FormatID(r.ID), r.Comment}
			if r.User != nil {
				fields = append(fields, r.User.Username)
			}
			return fields
		},
	}
}

func Games() Spec[models.Game] {
	return Spec[models.Game]{
		SearchFields: func(g models.Game) []string {
			return []string{g.Name, g.Slug}
		},
	}
}

func Services() Spec[models.Service] {
	return Spec[models.Service]{
		SearchFields: func(s models.Service) []string {
			return []string{s.Name, FormatID(s.ID)}
		},
	}
}
