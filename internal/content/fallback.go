package content

import "github.com/phinehas2020/havis-candy/internal/domain"

// Static catalog served whenever the content store is unconfigured or
// unreachable. The storefront must render with zero external
// dependencies reachable, so this data is a correctness requirement and
// not a convenience.

var FallbackProducts = []domain.Product{
	{
		ID:    "sorghum",
		Title: "Havi's Sorghum Caramels",
		Slug:  "havis-sorghum-caramels",
		Price: 7.95,
		ShortDescription: "The signature flavor made with homegrown sorghum syrup " +
			"from Central Texas.",
		LongDescription: "Indulge in rich artisan sweetness that blends old-fashioned " +
			"hard caramel tradition with sorghum's deep, unmistakable flavor.",
		ImageURL:             "https://static.wixstatic.com/media/fae32a_8c7f319c015b48cbaa15f2059aa3fbe7~mv2.jpg/v1/fill/w_720,h_960,al_c,q_80,usm_0.66_1.00_0.01,enc_avif,quality_auto/fae32a_8c7f319c015b48cbaa15f2059aa3fbe7~mv2.jpg",
		InStock:              true,
		AvailableForPurchase: true,
		Featured:             true,
		Badge:                "Signature",
	},
	{
		ID:    "chai",
		Title: "Havi's Chai Caramels",
		Slug:  "havis-chai-caramels",
		Price: 7.95,
		ShortDescription: "Warm chai spice notes folded into handcrafted hard caramel " +
			"for a bold finish.",
		LongDescription: "A comforting blend of aromatic chai spices and smooth caramel, " +
			"hand-poured and hand-wrapped with precision.",
		ImageURL:             "https://static.wixstatic.com/media/fae32a_a617cf9dced04eb7b233fc04b5686be0~mv2.jpg/v1/fill/w_720,h_960,al_c,q_80,usm_0.66_1.00_0.01,enc_avif,quality_auto/fae32a_a617cf9dced04eb7b233fc04b5686be0~mv2.jpg",
		InStock:              true,
		AvailableForPurchase: true,
		Featured:             true,
	},
	{
		ID:               "coffee",
		Title:            "Havi's Coffee Caramels",
		Slug:             "havis-coffee-caramels",
		Price:            7.95,
		ShortDescription: "Roasted coffee character paired with buttery caramel depth.",
		LongDescription: "A robust caramel for coffee lovers, balancing sweetness with " +
			"roasty complexity in each handcrafted piece.",
		ImageURL:             "https://static.wixstatic.com/media/fae32a_119becc1800e469b9e90d8c2f5c03dbd~mv2.jpg/v1/fill/w_720,h_960,al_c,q_80,usm_0.66_1.00_0.01,enc_avif,quality_auto/fae32a_119becc1800e469b9e90d8c2f5c03dbd~mv2.jpg",
		InStock:              true,
		AvailableForPurchase: true,
		Featured:             true,
	},
	{
		ID:               "peppermint",
		Title:            "Havi's Peppermint Caramels",
		Slug:             "havis-peppermint-caramels",
		Price:            7.95,
		ShortDescription: "A refreshing seasonal twist on classic caramel.",
		LongDescription: "Peppermint brightness meets the slow-crafted richness of hard " +
			"caramel for a festive, nostalgic flavor.",
		ImageURL:             "https://static.wixstatic.com/media/fae32a_beb0933ab6734b38b53c760e99c5316b~mv2.jpg/v1/fill/w_720,h_960,al_c,q_80,usm_0.66_1.00_0.01,enc_avif,quality_auto/fae32a_beb0933ab6734b38b53c760e99c5316b~mv2.jpg",
		InStock:              false,
		AvailableForPurchase: true,
		Badge:                "Seasonal",
	},
}

var FallbackLocations = []domain.StoreLocation{
	{
		ID:            "homestead-weekly-market",
		Name:          "Homestead Weekly Market",
		StreetAddress: "167 Halbert Ln",
		City:          "Waco",
		Region:        "TX",
		PostalCode:    "76705",
		MapURL:        "https://maps.apple.com/?address=167%20Halbert%20Ln,%20Waco,%20TX%20%2076705,%20United%20States&auid=10207572279643702141&ll=31.669584,-97.144901&lsp=9902&q=Homestead%20General%20Store&t=h",
	},
	{
		ID:            "brazos-valley-cheese",
		Name:          "Brazos Valley Cheese",
		StreetAddress: "206 Halbert Ln",
		City:          "Waco",
		Region:        "TX",
		PostalCode:    "76705",
		MapURL:        "https://maps.apple.com/?address=206%20Halbert%20Ln,%20Waco,%20TX%20%2076705,%20United%20States&auid=12886420290618432646&ll=31.670202,-97.147583&lsp=9902&q=Brazos%20Valley%20Cheese&t=h",
	},
	{
		ID:            "homestead-gristmill",
		Name:          "Homestead Gristmill",
		StreetAddress: "800 Dry Creek Rd",
		City:          "Waco",
		Region:        "TX",
		PostalCode:    "76705",
		MapURL:        "https://maps.apple.com/?address=800%20Dry%20Creek%20Rd,%20Waco,%20TX%20%2076705,%20United%20States&auid=13174332300600126003&ll=31.667114,-97.153466&lsp=9902&q=Homestead%20Gristmill&t=h",
	},
}

var FallbackTestimonials = []domain.Testimonial{
	{
		ID: "nancy-d",
		Quote: "My first taste of Havi's caramels came on a girls trip to Waco. They " +
			"were amazing and I immediately wished I had bought a bigger bag.",
		Author: "Nancy D.",
	},
}

var FallbackSiteSettings = domain.SiteSettings{
	BusinessName:   "Havi's Candy Co.",
	HeroEyebrow:    "Handmade in Waco, Texas",
	HeroHeading:    "Uniquely flavored, handmade hard caramels.",
	HeroSubheading: "Small-batch sweets made from scratch with all-natural ingredients and old-fashioned care.",
	StoryHeading:   "About Havi & Her Journey",
	StoryBody: "Ahavah “Havi” discovered her love for making sweet treats at just " +
		"five years old. What began as a childhood hobby grew into a business rooted " +
		"in craft, tradition, and hospitality.",
	PhilosophyBody: "Every batch is hand-poured and hand-wrapped. Sorghum from the family " +
		"farm in Central Texas gives Havi's signature caramel its distinctive flavor.",
	ContactEmail:   "info@haviscandyco.com",
	ContactPhone:   "(254) 555-0137",
	MailingAddress: "PO Box 2154, Waco, TX 76703",
	KitchenAddress: "608 Dry Creek Rd, Waco, TX 76705",
}

var FallbackAboutUs = domain.AboutUs{
	Body: "From Dry Creek Road to homes across America, Havi's Candy Co. carries on " +
		"a family tradition of small-batch hard caramels made with homegrown sorghum " +
		"syrup and old-fashioned care.",
}
