package domain

// Product is the canonical storefront product as served by the content
// store. AvailableForPurchase defaults to true when the source document
// omits it; a product without a StripePriceID cannot be checked out
// until catalog sync has run.
type Product struct {
	ID                   string  `json:"id"`
	Title                string  `json:"title"`
	Slug                 string  `json:"slug"`
	Price                float64 `json:"price"`
	ShortDescription     string  `json:"shortDescription"`
	LongDescription      string  `json:"longDescription"`
	ImageURL             string  `json:"imageUrl"`
	InStock              bool    `json:"inStock"`
	AvailableForPurchase bool    `json:"availableForPurchase"`
	Featured             bool    `json:"featured"`
	Badge                string  `json:"badge,omitempty"`
	StripePriceID        string  `json:"stripePriceId,omitempty"`
	StripeProductID      string  `json:"stripeProductId,omitempty"`
}

type StoreLocation struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	Region        string `json:"region"`
	PostalCode    string `json:"postalCode"`
	MapURL        string `json:"mapUrl"`
}

type Testimonial struct {
	ID     string `json:"id"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

type SiteSettings struct {
	BusinessName   string `json:"businessName"`
	HeroEyebrow    string `json:"heroEyebrow"`
	HeroHeading    string `json:"heroHeading"`
	HeroSubheading string `json:"heroSubheading"`
	StoryHeading   string `json:"storyHeading"`
	StoryBody      string `json:"storyBody"`
	StoryImageURL  string `json:"storyImageUrl,omitempty"`
	PhilosophyBody string `json:"philosophyBody"`
	ContactEmail   string `json:"contactEmail"`
	ContactPhone   string `json:"contactPhone"`
	MailingAddress string `json:"mailingAddress"`
	KitchenAddress string `json:"kitchenAddress"`
}

type AboutUs struct {
	Body string `json:"body"`
}
