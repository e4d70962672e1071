package models

// Field identifies one numeric series carried by every DailyPoint.
type Field string

const (
	FieldCPI          Field = "cpi"
	FieldInterestRate Field = "interestRate"
	FieldUnemployment Field = "unemployment"
	FieldM2           Field = "m2"
	FieldGDP          Field = "gdp"
	FieldSP500        Field = "sp500"
	FieldNasdaq       Field = "nasdaq"
	FieldBitcoin      Field = "bitcoin"
	FieldEthereum     Field = "ethereum"
	FieldGold         Field = "gold"
)

// Kind groups fields for display.
type Kind string

const (
	KindMacro Kind = "MACRO"
	KindAsset Kind = "ASSET"
)

// MaxSelection is the largest number of fields a view may select at once.
const MaxSelection = 4

// FieldInfo describes a field: how it is labelled, how precisely interpolated values are
// rounded, and whether a live overlay may replace its interpolated values.
type FieldInfo struct {
	ID          Field  `json:"id"`
	Label       string `json:"label"`
	Kind        Kind   `json:"kind"`
	Unit        string `json:"unit"`
	Precision   int32  `json:"precision"`
	Overlay     bool   `json:"overlay"`
	Selectable  bool   `json:"selectable"`
	Description string `json:"description"`
}

var fieldTable = []FieldInfo{
	{
		ID: FieldInterestRate, Label: "Fed Funds Rate", Kind: KindMacro, Unit: "%", Precision: 2, Selectable: true,
		Description: "The interest rate banks charge each other. Higher rates often cool down markets.",
	},
	{
		ID: FieldCPI, Label: "CPI (Inflation)", Kind: KindMacro, Unit: "Idx", Precision: 2, Selectable: true,
		Description: "Consumer Price Index. Measures inflation. High inflation hurts purchasing power.",
	},
	{
		ID: FieldUnemployment, Label: "Unemployment Rate", Kind: KindMacro, Unit: "%", Precision: 1, Selectable: true,
		Description: "Percentage of labor force without jobs. Can indicate economic health.",
	},
	{
		ID: FieldM2, Label: "M2 Money Supply", Kind: KindMacro, Unit: "$T", Precision: 2, Selectable: true,
		Description: "Total amount of money in circulation. More money often boosts asset prices.",
	},
	{
		ID: FieldSP500, Label: "S&P 500", Kind: KindAsset, Unit: "$", Precision: 0, Selectable: true,
		Description: "Top 500 US companies. The benchmark for the stock market.",
	},
	{
		ID: FieldNasdaq, Label: "NASDAQ", Kind: KindAsset, Unit: "$", Precision: 0, Selectable: true,
		Description: "Tech-heavy stock index. More sensitive to interest rates.",
	},
	{
		ID: FieldBitcoin, Label: "Bitcoin", Kind: KindAsset, Unit: "$", Precision: 0, Overlay: true, Selectable: true,
		Description: "The original cryptocurrency. Digital gold.",
	},
	{
		ID: FieldEthereum, Label: "Ethereum", Kind: KindAsset, Unit: "$", Precision: 0, Overlay: true, Selectable: true,
		Description: "Smart contract blockchain platform. Highly volatile.",
	},
	{
		ID: FieldGold, Label: "Gold", Kind: KindAsset, Unit: "$", Precision: 0, Selectable: true,
		Description: "Traditional safe-haven asset. Often rises when markets are uncertain.",
	},
	// Reserved. Never interpolated, always zero.
	{ID: FieldGDP, Label: "GDP", Kind: KindMacro, Unit: "$T", Precision: 0},
}

// Fields returns a copy of the field table in display order.
func Fields() []FieldInfo {
	out := make([]FieldInfo, len(fieldTable))
	copy(out, fieldTable)
	return out
}

// SelectableFields returns the fields a user may pick for charts and correlations.
func SelectableFields() []FieldInfo {
	out := make([]FieldInfo, 0, len(fieldTable))
	for _, f := range fieldTable {
		if f.Selectable {
			out = append(out, f)
		}
	}
	return out
}

// LookupField returns the table entry for id.
func LookupField(id string) (FieldInfo, bool) {
	for _, f := range fieldTable {
		if string(f.ID) == id {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// Info returns the table entry for f, or a zero FieldInfo for unknown fields.
func (f Field) Info() FieldInfo {
	info, _ := LookupField(string(f))
	return info
}

// Precision is the number of decimals interpolated values of f are rounded to.
func (f Field) Precision() int32 { return f.Info().Precision }

// Overlayable reports whether live data may replace interpolated values of f.
func (f Field) Overlayable() bool { return f.Info().Overlay }

// Label returns the display label, falling back to the raw id.
func (f Field) Label() string {
	if info, ok := LookupField(string(f)); ok {
		return info.Label
	}
	return string(f)
}

// InterpolatedFields lists the fields computed from anchors, i.e. everything but GDP.
func InterpolatedFields() []Field {
	out := make([]Field, 0, len(fieldTable))
	for _, f := range fieldTable {
		if f.ID != FieldGDP {
			out = append(out, f.ID)
		}
	}
	return out
}
