package seed

// seedUser is a development account created by the seeder
type seedUser struct {
	Email    string
	Password string
	FullName string
	Roles    []string
}

// seedProduct is a catalogue entry created by the seeder
type seedProduct struct {
	Title       string
	Price       float64
	Description string
	Stock       int
	Sizes       []string
	Gender      string
	Tags        []string
}

var seedUsers = []seedUser{
	{
		Email:    "admin@example.com",
		Password: "Admin123",
		FullName: "Admin User",
		Roles:    []string{"admin", "user"},
	},
	{
		Email:    "ada@example.com",
		Password: "Abc12345",
		FullName: "Ada Lovelace",
		Roles:    []string{"user"},
	},
	{
		Email:    "grace@example.com",
		Password: "Abc12345",
		FullName: "Grace Hopper",
		Roles:    []string{"user"},
	},
}

var seedProducts = []seedProduct{
	{
		Title:       "Classic Crew Tee",
		Price:       24,
		Description: "Soft cotton crew neck tee with a relaxed fit.",
		Stock:       40,
		Sizes:       []string{"S", "M", "L", "XL"},
		Gender:      "unisex",
		Tags:        []string{"shirt", "cotton"},
	},
	{
		Title:       "Quilted Bomber Jacket",
		Price:       120,
		Description: "Lightweight quilted bomber with ribbed cuffs and hem.",
		Stock:       12,
		Sizes:       []string{"M", "L", "XL"},
		Gender:      "men",
		Tags:        []string{"jacket"},
	},
	{
		Title:       "Fleece Pullover Hoodie",
		Price:       65,
		Description: "Midweight fleece hoodie with front pouch pocket.",
		Stock:       25,
		Sizes:       []string{"XS", "S", "M", "L"},
		Gender:      "women",
		Tags:        []string{"hoodie", "fleece"},
	},
	{
		Title:       "Canvas Field Cap",
		Price:       22,
		Description: "Six panel canvas cap with adjustable strap.",
		Stock:       60,
		Sizes:       []string{"ONE"},
		Gender:      "unisex",
		Tags:        []string{"hat"},
	},
	{
		Title:       "Kids Dino Raincoat",
		Price:       45,
		Description: "Waterproof raincoat with dinosaur spine hood.",
		Stock:       18,
		Sizes:       []string{"XS", "S"},
		Gender:      "kid",
		Tags:        []string{"raincoat", "kids"},
	},
	{
		Title:       "Thermal Base Layer",
		Price:       38,
		Description: "Moisture wicking thermal top for cold rides.",
		Stock:       30,
		Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		Gender:      "men",
		Tags:        []string{"thermal", "base-layer"},
	},
}
