package category

// Category is a storefront catalog section. Products refer to it by Slug.
type Category struct {
	ID       int     `json:"id"`
	Slug     string  `json:"slug"`
	Name     string  `json:"name"`
	Image    *string `json:"image,omitempty"`
	Position int     `json:"position"`
}
