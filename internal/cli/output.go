package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Product:
		o.printProduct(v)
	case []Product:
		o.printProductList(v)
	case SeedResult:
		o.printSeedResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	IsActive bool     `json:"is_active"`
	Roles    []string `json:"roles"`
}

// AuthResult combines user and token
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Product response type
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	Stock       int       `json:"stock"`
	Sizes       []string  `json:"sizes"`
	Gender      string    `json:"gender"`
	Tags        []string  `json:"tags,omitempty"`
	Images      []string  `json:"images,omitempty"`
	OwnerID     string    `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SeedResult response type
type SeedResult struct {
	Users    int `json:"users"`
	Products int `json:"products"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.FullName, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Roles: %s\n", strings.Join(u.Roles, ", "))
	if !u.IsActive {
		fmt.Println("Status: inactive")
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printProduct(p Product) {
	fmt.Printf("Product: %s (%s)\n", p.Title, p.ID)
	fmt.Printf("Slug: %s\n", p.Slug)
	fmt.Printf("Price: %.2f\n", p.Price)
	fmt.Printf("Stock: %d\n", p.Stock)
	fmt.Printf("Gender: %s\n", p.Gender)
	if len(p.Sizes) > 0 {
		fmt.Printf("Sizes: %s\n", strings.Join(p.Sizes, ", "))
	}
	if len(p.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(p.Tags, ", "))
	}
	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
	for _, img := range p.Images {
		fmt.Printf("Image: %s\n", img)
	}
}

func (o *Output) printProductList(products []Product) {
	if len(products) == 0 {
		fmt.Println("No products")
		return
	}
	fmt.Printf("Products (%d):\n", len(products))
	for _, p := range products {
		fmt.Printf("  - %s (%s) %.2f, stock %d\n", p.Title, p.Slug, p.Price, p.Stock)
	}
}

func (o *Output) printSeedResult(r SeedResult) {
	fmt.Printf("Seeded %d users and %d products\n", r.Users, r.Products)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
