// Package templates renders the order pages as templ components.
package templates

// Option is one entry of a select element.
type Option struct {
	Value string
	Label string
}

// OrderListRow is one order in the listing.
type OrderListRow struct {
	ID               string
	Number           string
	ClientName       string
	Title            string
	ScheduledFor     string
	PayableTotal     string
	Margin           string
	IsPositiveMargin bool
}

type OrderListData struct {
	Orders []OrderListRow
}

// TotalsView holds formatted order totals.
type TotalsView struct {
	Subtotal          string
	DiscountAmount    string
	Deductions        string
	PayableTotal      string
	TotalMaterialCost string
	TotalLaborCost    string
	TotalCost         string
	TotalProfit       string
	TotalMargin       string
	IsPositiveMargin  bool
}

type MaterialEdit struct {
	ID            string
	Name          string
	Unit          string
	Quantity      float64
	UnitCost      float64
	UnitSalePrice float64
	TotalCost     string
	TotalSale     string
}

type LaborEdit struct {
	ID         string
	Name       string
	Minutes    int
	HourlyRate float64
	TotalCost  string
}

type ItemEdit struct {
	ID               string
	Index            int
	CatalogRef       string
	Description      string
	Quantity         float64
	UnitPrice        float64
	EstimatedMinutes int
	LineTotal        string
	MaterialCost     string
	LaborCost        string
	ItemProfit       string
	ItemMargin       string
	IsPositiveMargin bool
	Materials        []MaterialEdit
	Labor            []LaborEdit
}

// OrderEditData is everything the edit page shows.
type OrderEditData struct {
	ID               string
	Number           string
	IsNew            bool
	Restored         bool
	AutosaveState    string
	AutosaveAt       string
	ClientName       string
	Title            string
	Notes            string
	ScheduledFor     string
	DiscountMode     string
	DiscountValue    float64
	Travel           float64
	Parking          float64
	Toll             float64
	Other            float64
	OtherDescription string
	Items            []ItemEdit
	Totals           TotalsView
	ServiceOptions   []Option
	MaterialOptions  []Option
	StaffOptions     []Option
	UnitOptions      []string
	DiscountModes    []Option
}
