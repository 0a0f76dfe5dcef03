// Package catalog holds the fixed category tree and the task statuses
// shown on the board.
package catalog

import "slices"

var categories = map[string][]string{
	"Legal": {
		"Lease Agreements",
		"Vacating Notice",
		"Letter to tenants",
		"Employees letters",
		"Contract reviews",
		"New Contracts Binding",
		"Legal documents",
		"Verification of documents",
	},
	"Customer Service": {
		"Complaints/Issues",
		"Repairs",
		"Follow-up on late payments",
	},
	"Accounts": {
		"Payment Reconciliation",
		"Payment to Suppliers",
		"Payment to Contractors",
		"Petty Cash Reconciliation",
		"Sales Reconciliation (Jatflora) ETR",
		"Mumbu ETR Jatflora",
		"Data Entry in QuickBooks (Jatflora)",
		"Office Supplies",
		"Accounting Activities",
	},
	"Security": {
		"Access update",
		"Emergency updates",
		"Incident Reports",
		"Security notifications",
	},
	"Potential Tenants": {
		"Scheduling Appointments",
		"Follow-up with the potential client",
		"Processing Documents",
		"Onboarding process",
	},
	"HR": {
		"Onboarding Staff",
		"Annual Leave",
		"Staff Welfare",
		"Sick Leave",
		"Staff Request",
		"Staff Occupation equipments",
	},
	"Suppliers": {
		"Receiving Invoices",
		"Processing Invoices",
		"Scheduling Services",
		"Addressing concerns",
		"Quotation review & Examination",
	},
	"Contractors": {
		"Scheduling Assessment",
		"Scheduling Repairs",
		"Follow-up for Invoices and Quotations",
		"Follow-up on repairs",
		"Verification of the job done",
		"Report to Director",
	},
}

// Status describes one kanban column.
type Status struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"bg"`
	TextColor string `json:"text"`
}

var statuses = []Status{
	{ID: 1, Name: "To Do", Color: "#7c3aed", TextColor: "#ffffff"},
	{ID: 2, Name: "Pending", Color: "#f59e0b", TextColor: "#0b0b0b"},
	{ID: 3, Name: "Done", Color: "#10b981", TextColor: "#ffffff"},
	{ID: 4, Name: "On Hold", Color: "#2563eb", TextColor: "#ffffff"},
}

// Categories returns a copy of the category tree.
func Categories() map[string][]string {
	res := make(map[string][]string, len(categories))
	for name, subs := range categories {
		res[name] = slices.Clone(subs)
	}
	return res
}

// CategoryNames returns the top-level keys in alphabetical order.
func CategoryNames() []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func IsCategory(category string) bool {
	_, ok := categories[category]
	return ok
}

// IsSubcategory reports whether subcategory belongs to category.
func IsSubcategory(category, subcategory string) bool {
	subs, ok := categories[category]
	if !ok {
		return false
	}
	return slices.Contains(subs, subcategory)
}

func Statuses() []Status {
	return slices.Clone(statuses)
}

// StatusByID returns the status with the given id.
func StatusByID(id int) (Status, bool) {
	for _, s := range statuses {
		if s.ID == id {
			return s, true
		}
	}
	return Status{}, false
}
