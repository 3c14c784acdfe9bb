package fields

// Field kinds
const (
	KindText   = "text"
	KindNumber = "number" // free-text numeric entry, stored unparsed
	KindDate   = "date"   // coerced to YYYY-MM-DD on submission
	KindSelect = "select" // resolved against Choices
)

type Field struct {
	Label       string   `json:"label"`
	Kind        string   `json:"kind"`
	Choices     []string `json:"choices,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
}

type Section struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

const numPlaceholder = "Number (If used) or N/A"

// sections is the whole form, defined once at startup and never mutated.
// Section names group fields for display; field labels double as export
// column headers, so they must be unique across the entire form.
var sections = []Section{
	{
		Name: "Procedure - Settings",
		Fields: []Field{
			{Label: "#Num", Kind: KindNumber, Placeholder: "1-Infinity"},
			{Label: "Date", Kind: KindDate},
			{Label: "Labeling", Kind: KindText},
			{Label: "Protein type", Kind: KindSelect, Choices: []string{"Type A", "Type B", "Type C"}},
			{Label: "Concentration [wt/wt%]", Kind: KindNumber},
		},
	},
	{
		Name: "Procedure - Physical Treatments",
		Fields: []Field{
			{Label: "Right valve [bar]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Left valve 2 [bar]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Temp after HPH [°C]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "HPH fraction [%]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Initial water temp", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Acid name", Kind: KindText, Placeholder: "Name (If used) or N/A"},
			{Label: "Mixing temp[°C]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Mixing time", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Heat treatment fraction[%]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "pH", Kind: KindNumber, Placeholder: numPlaceholder},
		},
	},
	{
		Name: "Enzymes Hydrolyzing",
		Fields: []Field{
			{Label: "Y/N", Kind: KindSelect, Choices: []string{"Yes", "No"}},
			{Label: "Enz num.", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Name", Kind: KindSelect, Choices: []string{"Enzyme A", "Enzyme B"}},
			{Label: "Concentration [%]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Added enz [g]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Addition temp [°C]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Ino. time [min]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Ino. temp. [°C]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "stirring [RPM]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "black box protein fraction[%]", Kind: KindNumber, Placeholder: numPlaceholder},
		},
	},
	{
		Name: "Enzymes Crosslinking",
		Fields: []Field{
			{Label: "Crosslinker Name", Kind: KindSelect, Choices: []string{"Crosslinker X", "Crosslinker Y"}},
			{Label: "Crosslinker Enz num.", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Crosslinker Concentration [%]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Crosslinker Added enz [g]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Crosslinker Addition temp [°C]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Crosslinker Ino. time [min]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Crosslinker Ino. temp. [°C]", Kind: KindNumber, Placeholder: numPlaceholder},
			{Label: "Crosslinker stirring [RPM]", Kind: KindNumber, Placeholder: numPlaceholder},
		},
	},
	{
		Name: "Gel / Drying",
		Fields: []Field{
			{Label: "G/D", Kind: KindSelect, Choices: []string{"Drying", "Gel"}},
			{Label: "o.n incubation at 4 °C (Y/N)", Kind: KindSelect, Choices: []string{"Yes", "No"}},
			{Label: "Drying type", Kind: KindSelect, Choices: []string{"Freeze dry", "Spray dry", "N/A"}},
		},
	},
	{
		Name: "Gel Functionality",
		Fields: []Field{
			{Label: "Fresh/rehydrated", Kind: KindText, Placeholder: "Enter value"},
			{Label: "Added protein?", Kind: KindNumber, Placeholder: "Number (if used) or N/A"},
			{Label: "Added protein type", Kind: KindText, Placeholder: "Type (if used) or N/A"},
			{Label: "Meal:water:added protein ratio", Kind: KindText, Placeholder: "Ratio (if used) or N/A"},
			{Label: "Rehydration equipment", Kind: KindText, Placeholder: "Enter equipment"},
			{Label: "Stress at Maximum Load (KPa)", Kind: KindNumber, Placeholder: "Insert average stress"},
			{Label: "Percentage Strain at Maximum Load", Kind: KindNumber, Placeholder: "Insert average strain"},
		},
	},
	{
		Name: "TPA & Sensory Tests",
		Fields: []Field{
			{Label: "TPA1", Kind: KindNumber},
			{Label: "TPA", Kind: KindNumber},
			{Label: "Chewiness", Kind: KindNumber},
			{Label: "Hardness", Kind: KindNumber},
			{Label: "Juiciness", Kind: KindNumber},
			{Label: "Mushiness", Kind: KindNumber},
		},
	},
}

var (
	all     []Field
	byLabel map[string]Field
)

func init() {
	byLabel = make(map[string]Field)
	for _, sec := range sections {
		for _, f := range sec.Fields {
			all = append(all, f)
			byLabel[f.Label] = f
		}
	}
}

// Sections returns the form layout in display order.
func Sections() []Section {
	return sections
}

// All returns every field in form order.
func All() []Field {
	return all
}

// Columns returns the export column headers, one per field, in form order.
func Columns() []string {
	cols := make([]string, len(all))
	for i, f := range all {
		cols[i] = f.Label
	}
	return cols
}

// Lookup finds a field by its label.
func Lookup(label string) (Field, bool) {
	f, ok := byLabel[label]
	return f, ok
}
