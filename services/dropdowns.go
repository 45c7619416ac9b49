package services

// UnitOptions lists the units of measure offered for material lines.
var UnitOptions = []string{
	"un",
	"m",
	"m²",
	"m³",
	"kg",
	"L",
	"cx",
	"pc",
	"rolo",
	"par",
	"kit",
	"h",
}

// DiscountModeOptions lists the discount modes in display order.
var DiscountModeOptions = []DiscountMode{DiscountPercent, DiscountAbsolute}
