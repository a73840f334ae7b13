// ABOUTME: Static fallback data when OpenAI API key is not available.
// ABOUTME: Provides realistic-looking records for every brokerage resource.

package seed

import (
	"fmt"
	"time"
)

// labelFields names the field that gets a numeric suffix when templates repeat.
var labelFields = map[string]string{
	"properties":   "name",
	"partners":     "name",
	"articles":     "title",
	"careers":      "title",
	"testimonials": "client_name",
	"certificates": "title",
	"inquiries":    "name",
	"schedules":    "client_name",
	"items":        "name",
}

func staticTemplates(slug string) []map[string]any {
	switch slug {
	case "properties":
		return []map[string]any{
			{"name": "Azure Residences Unit 12F", "location": "Parañaque", "price": 8500000.0, "status": "For Sale", "property_type": "Condominium", "bedrooms": 2.0, "floor_area": 54.0, "featured": true, "description": "Corner unit with a view of the beach-themed amenity deck. Walking distance to the airport terminals."},
			{"name": "Ayala Alabang Village House", "location": "Muntinlupa", "price": 68000000.0, "status": "For Sale", "property_type": "House and Lot", "bedrooms": 5.0, "floor_area": 420.0, "featured": true, "description": "Two-storey home on a quiet street with a pool and a maid's quarters."},
			{"name": "BGC Studio near High Street", "location": "Taguig", "price": 35000.0, "status": "For Rent", "property_type": "Condominium", "bedrooms": 0.0, "floor_area": 28.0, "featured": false, "description": "Fully furnished studio, ideal for young professionals. Association dues included."},
			{"name": "Tagaytay Ridge Lot", "location": "Tagaytay", "price": 12500000.0, "status": "For Sale", "property_type": "Lot", "floor_area": 500.0, "featured": false, "description": "Flat residential lot with a view of Taal Lake."},
			{"name": "Ortigas Office Floor", "location": "Pasig", "price": 450000.0, "status": "For Rent", "property_type": "Commercial", "floor_area": 900.0, "featured": false, "description": "Whole-floor office space with backup power and four parking slots."},
			{"name": "Quezon City Townhouse", "location": "Quezon City", "price": 14800000.0, "status": "Sold", "property_type": "House and Lot", "bedrooms": 3.0, "floor_area": 150.0, "featured": false, "description": "Three-level townhouse inside a gated community near Tomas Morato."},
			{"name": "Rockwell Two-Bedroom", "location": "Makati", "price": 95000.0, "status": "For Rent", "property_type": "Condominium", "bedrooms": 2.0, "floor_area": 110.0, "featured": true, "description": "High-floor unit with city views, walking distance to Power Plant Mall."},
			{"name": "Cebu IT Park Loft", "location": "Cebu City", "price": 6200000.0, "status": "For Sale", "property_type": "Condominium", "bedrooms": 1.0, "floor_area": 42.0, "featured": false, "description": "Loft-type unit close to offices, cafes and the Sugbo Mercado night market."},
		}
	case "partners":
		return []map[string]any{
			{"name": "Ayala Land", "category": "Developer", "website": "https://www.ayalaland.com.ph", "contact_email": "partners@ayalaland.example"},
			{"name": "Megaworld", "category": "Developer", "website": "https://www.megaworldcorp.com", "contact_email": "sales@megaworld.example"},
			{"name": "BDO Home Loans", "category": "Bank", "website": "https://www.bdo.com.ph", "contact_email": "homeloans@bdo.example"},
			{"name": "BPI Family Savings", "category": "Bank", "website": "https://www.bpi.com.ph", "contact_email": "housing@bpi.example"},
			{"name": "Pag-IBIG Fund", "category": "Bank", "website": "https://www.pagibigfund.gov.ph", "contact_email": "info@pagibig.example"},
			{"name": "Malayan Insurance", "category": "Insurance", "website": "https://www.malayan.com", "contact_email": "property@malayan.example"},
		}
	case "articles":
		return []map[string]any{
			{"title": "Five Questions to Ask Before Buying Pre-Selling", "author": "Maria Santos", "category": "Guides", "published": true, "body": "Pre-selling units can be cheaper, but turnover dates slip. Ask about the developer's track record and the license to sell."},
			{"title": "Metro Manila Condo Prices in Q3", "author": "Paolo Reyes", "category": "Market Updates", "published": true, "body": "Secondary market prices stayed flat while rents in Makati and BGC rose slightly."},
			{"title": "We Opened a Cebu Office", "author": "Admin", "category": "News", "published": true, "body": "Our new branch in Cebu IT Park serves clients across the Visayas."},
			{"title": "How Pag-IBIG Housing Loans Work", "author": "Maria Santos", "category": "Guides", "published": true, "body": "Members with at least 24 monthly contributions can borrow for a home. Here is the paperwork you need."},
			{"title": "Draft: Rental Yield Calculator", "author": "Paolo Reyes", "category": "Guides", "published": false, "body": "Work in progress."},
		}
	case "careers":
		return []map[string]any{
			{"title": "Licensed Real Estate Broker", "department": "Sales", "employment_type": "Full-time", "location": "Makati", "open": true, "description": "Lead a team of agents and close residential deals."},
			{"title": "Property Leasing Associate", "department": "Leasing", "employment_type": "Full-time", "location": "Taguig", "open": true, "description": "Match tenants with rental units and handle lease paperwork."},
			{"title": "Marketing Intern", "department": "Marketing", "employment_type": "Part-time", "location": "Remote", "open": true, "description": "Help produce listing photos and social posts."},
			{"title": "Interior Stylist", "department": "Operations", "employment_type": "Contract", "location": "Quezon City", "open": false, "description": "Stage model units before open houses."},
		}
	case "testimonials":
		return []map[string]any{
			{"client_name": "Jose Dela Cruz", "rating": 5.0, "message": "They found us a house near our kids' school in under a month."},
			{"client_name": "Anna Lim", "rating": 4.0, "message": "Smooth condo purchase. The bank paperwork took a while but the team kept us updated."},
			{"client_name": "Mark Villanueva", "rating": 5.0, "message": "Leased out my unit within two weeks of listing."},
		}
	case "certificates":
		return []map[string]any{
			{"title": "PRC Real Estate Broker License", "issuer": "Professional Regulation Commission", "issued_on": "2019-06-14"},
			{"title": "DHSUD Registration", "issuer": "Department of Human Settlements and Urban Development", "issued_on": "2021-02-01"},
			{"title": "Top Seller Award", "issuer": "Ayala Land", "issued_on": "2023-12-05"},
		}
	case "inquiries":
		return []map[string]any{
			{"name": "Grace Tan", "email": "grace.tan@example.com", "phone": "0917 555 0101", "property": "Rockwell Two-Bedroom", "status": "New", "message": "Is the unit pet friendly?"},
			{"name": "Ramon Garcia", "email": "ramon.g@example.com", "phone": "0918 555 0144", "property": "Tagaytay Ridge Lot", "status": "Contacted", "message": "Can the price be negotiated for a cash buyer?"},
			{"name": "Liza Mendoza", "email": "liza.mendoza@example.com", "property": "BGC Studio near High Street", "status": "Closed", "message": "We'd like to view it this weekend."},
			{"name": "Carlo Bautista", "email": "carlo.b@example.com", "phone": "0999 555 0199", "status": "New", "message": "Looking for a three-bedroom house in Alabang under 30M."},
		}
	case "schedules":
		return []map[string]any{
			{"client_name": "Grace Tan", "property": "Rockwell Two-Bedroom", "status": "Confirmed", "notes": "Bring the pet policy from the admin office."},
			{"client_name": "Liza Mendoza", "property": "BGC Studio near High Street", "status": "Pending", "notes": ""},
			{"client_name": "Ramon Garcia", "property": "Tagaytay Ridge Lot", "status": "Cancelled", "notes": "Client rescheduling after holidays."},
		}
	case "items":
		return []map[string]any{
			{"name": "For Sale signage", "category": "Marketing", "quantity": 40.0},
			{"name": "Lockbox", "category": "Equipment", "quantity": 12.0},
			{"name": "Brochure stand", "category": "Marketing", "quantity": 6.0},
			{"name": "Laser measure", "category": "Equipment", "quantity": 4.0},
		}
	}
	return nil
}

// staticRecords returns count records for slug, cycling through templates.
// Repeats get a numbered label and schedules are spread over coming days.
func staticRecords(slug string, count int) []map[string]any {
	templates := staticTemplates(slug)
	if len(templates) == 0 || count <= 0 {
		return nil
	}

	now := time.Now().UTC().Truncate(time.Hour)
	label := labelFields[slug]

	result := make([]map[string]any, count)
	for i := 0; i < count; i++ {
		rec := make(map[string]any, len(templates[0])+1)
		for k, v := range templates[i%len(templates)] {
			rec[k] = v
		}
		if i >= len(templates) && label != "" {
			rec[label] = fmt.Sprintf("%v %d", rec[label], i/len(templates)+1)
		}
		if slug == "schedules" {
			rec["scheduled_at"] = now.Add(time.Duration(i+1) * 26 * time.Hour).Format(time.RFC3339)
		}
		result[i] = rec
	}
	return result
}
