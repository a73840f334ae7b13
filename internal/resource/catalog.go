// ABOUTME: Built-in brokerage resources served by the API and the admin console.
// ABOUTME: Properties, partners, articles, careers, testimonials and the rest.

package resource

func init() {
	for _, s := range Catalog() {
		Register(s)
	}
}

// Catalog returns the brokerage resource schemas.
func Catalog() []Schema {
	return []Schema{
		{
			Name: "Properties",
			Slug: "properties",
			Fields: []Field{
				{Name: "id", Type: TypeString, Display: "ID"},
				{Name: "name", Type: TypeString, Display: "Name", Required: true, Editable: true},
				{Name: "location", Type: TypeString, Display: "Location", Required: true, Editable: true},
				{Name: "price", Type: TypeNumber, Display: "Price", Editable: true},
				{Name: "status", Type: TypeCombobox, Display: "Status", Required: true, Editable: true,
					Options: []string{"For Sale", "For Rent", "Sold"}},
				{Name: "property_type", Type: TypeCombobox, Display: "Type", Editable: true,
					Options: []string{"Condominium", "House and Lot", "Lot", "Commercial"}},
				{Name: "bedrooms", Type: TypeNumber, Display: "Bedrooms", Editable: true},
				{Name: "floor_area", Type: TypeNumber, Display: "Floor Area (sqm)", Editable: true},
				{Name: "featured", Type: TypeCheckbox, Display: "Featured", Editable: true},
				{Name: "description", Type: TypeText, Display: "Description", Editable: true},
				{Name: "created_at", Type: TypeDatetime, Display: "Created"},
			},
			ListColumns:   []string{"name", "location", "price", "status", "property_type", "featured", "created_at"},
			Actions:       DefaultActions("properties"),
			FilterField:   "status",
			FilterOptions: []string{"For Sale", "For Rent", "Sold"},
		},
		{
			Name: "Partners",
			Slug: "partners",
			Fields: []Field{
				{Name: "id", Type: TypeString, Display: "ID"},
				{Name: "name", Type: TypeString, Display: "Name", Required: true, Editable: true},
				{Name: "category", Type: TypeCombobox, Display: "Category", Editable: true,
					Options: []string{"Developer", "Bank", "Insurance"}},
				{Name: "website", Type: TypeURL, Display: "Website", Editable: true},
				{Name: "contact_email", Type: TypeEmail, Display: "Contact", Editable: true},
				{Name: "created_at", Type: TypeDatetime, Display: "Created"},
			},
			ListColumns:   []string{"name", "category", "website", "contact_email"},
			Actions:       DefaultActions("partners"),
			FilterField:   "category",
			FilterOptions: []string{"Developer", "Bank", "Insurance"},
		},
		{
			Name: "Articles",
			Slug: "articles",
			Fields: []Field{
				{Name: "id", Type: TypeString, Display: "ID"},
				{Name: "title", Type: TypeString, Display: "Title", Required: true, Editable: true},
				{Name: "author", Type: TypeString, Display: "Author", Editable: true},
				{Name: "category", Type: TypeCombobox, Display: "Category", Editable: true,
					Options: []string{"News", "Guides", "Market Updates"}},
				{Name: "published", Type: TypeCheckbox, Display: "Published", Editable: true},
				{Name: "body", Type: TypeText, Display: "Body", Editable: true},
				{Name: "created_at", Type: TypeDatetime, Display: "Created"},
			},
			ListColumns:   []string{"title", "author", "category", "published", "created_at"},
			Actions:       DefaultActions("articles"),
			FilterField:   "category",
			FilterOptions: []string{"News", "Guides", "Market Updates"},
		},
		{
			Name: "Careers",
			Slug: "careers",
			Fields: []Field{
				{Name: "id", Type: TypeString, Display: "ID"},
				{Name: "title", Type: TypeString, Display: "Position", Required: true, Editable: true},
				{Name: "department", Type: TypeString, Display: "Department", Editable: true},
				{Name: "employment_type", Type: TypeCombobox, Display: "Employment", Editable: true,
					Options: []string{"Full-time", "Part-time", "Contract"}},
				{Name: "location", Type: TypeString, Display: "Location", Editable: true},
				{Name: "open", Type: TypeCheckbox, Display: "Open", Editable: true},
				{Name: "description", Type: TypeText, Display: "Description", Editable: true},
			},
			ListColumns:   []string{"title", "department", "employment_type", "location", "open"},
			Actions:       DefaultActions("careers"),
			FilterField:   "employment_type",
			FilterOptions: []string{"Full-time", "Part-time", "Contract"},
		},
		{
			Name: "Testimonials",
			Slug: "testimonials",
			Fields: []Field{
				{Name: "id", Type: TypeString, Display: "ID"},
				{Name: "client_name", Type: TypeString, Display: "Client", Required: true, Editable: true},
				{Name: "rating", Type: TypeNumber, Display: "Rating", Editable: true},
				{Name: "message", Type: TypeText, Display: "Message", Required: true, Editable: true},
				{Name: "created_at", Type: TypeDatetime, Display: "Created"},
			},
			ListColumns: []string{"client_name", "rating", "message", "created_at"},
			Actions:     DefaultActions("testimonials"),
		},
		{
			Name: "Certificates",
			Slug: "certificates",
			Fields: []Field{
				{Name: "id", Type: TypeString, Display: "ID"},
				{Name: "title", Type: TypeString, Display: "Title", Required: true, Editable: true},
				{Name: "issuer", Type: TypeString, Display: "Issuer", Editable: true},
				{Name: "issued_on", Type: TypeString, Display: "Issued On", Editable: true},
				{Name: "created_at", Type: TypeDatetime, Display: "Created"},
			},
			ListColumns: []string{"title", "issuer", "issued_on"},
			Actions:     DefaultActions("certificates"),
		},
		{
			Name: "Inquiries",
			Slug: "inquiries",
			Fields: []Field{
				{Name: "id", Type: TypeString, Display: "ID"},
				{Name: "name", Type: TypeString, Display: "Name", Required: true, Editable: true},
				{Name: "email", Type: TypeEmail, Display: "Email", Required: true, Editable: true},
				{Name: "phone", Type: TypeString, Display: "Phone", Editable: true},
				{Name: "property", Type: TypeString, Display: "Property", Editable: true},
				{Name: "status", Type: TypeCombobox, Display: "Status", Editable: true,
					Options: []string{"New", "Contacted", "Closed"}},
				{Name: "message", Type: TypeText, Display: "Message", Editable: true},
				{Name: "created_at", Type: TypeDatetime, Display: "Received"},
			},
			ListColumns:   []string{"name", "email", "property", "status", "created_at"},
			Actions:       DefaultActions("inquiries"),
			FilterField:   "status",
			FilterOptions: []string{"New", "Contacted", "Closed"},
		},
		{
			Name: "Schedules",
			Slug: "schedules",
			Fields: []Field{
				{Name: "id", Type: TypeString, Display: "ID"},
				{Name: "client_name", Type: TypeString, Display: "Client", Required: true, Editable: true},
				{Name: "property", Type: TypeString, Display: "Property", Editable: true},
				{Name: "scheduled_at", Type: TypeDatetime, Display: "Viewing", Required: true, Editable: true},
				{Name: "status", Type: TypeCombobox, Display: "Status", Editable: true,
					Options: []string{"Pending", "Confirmed", "Cancelled"}},
				{Name: "notes", Type: TypeText, Display: "Notes", Editable: true},
			},
			ListColumns:   []string{"client_name", "property", "scheduled_at", "status"},
			Actions:       DefaultActions("schedules"),
			FilterField:   "status",
			FilterOptions: []string{"Pending", "Confirmed", "Cancelled"},
		},
		{
			Name: "Items",
			Slug: "items",
			Fields: []Field{
				{Name: "id", Type: TypeString, Display: "ID"},
				{Name: "name", Type: TypeString, Display: "Name", Required: true, Editable: true},
				{Name: "category", Type: TypeString, Display: "Category", Editable: true},
				{Name: "quantity", Type: TypeNumber, Display: "Quantity", Editable: true},
				{Name: "created_at", Type: TypeDatetime, Display: "Created"},
			},
			ListColumns: []string{"name", "category", "quantity"},
			Actions:     DefaultActions("items"),
		},
	}
}
