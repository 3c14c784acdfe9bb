/*
Package fields defines the static form field schema.

The schema is the single source of truth for the experiment form: the
frontend renders inputs from it (GET /fields), row submission coerces
values against it, and the export pipeline takes its column ordering
from it. Changing the form means editing one table here, not every
handler.

# Layout

Fields are grouped into ordered sections:

  - Procedure - Settings
  - Procedure - Physical Treatments
  - Enzymes Hydrolyzing
  - Enzymes Crosslinking
  - Gel / Drying
  - Gel Functionality
  - TPA & Sensory Tests

# Field Kinds

	KindText    free text, passed through verbatim
	KindNumber  numeric entry kept as text, never parsed
	KindDate    coerced to YYYY-MM-DD on submission
	KindSelect  resolved against the declared Choices

# Operations

	fields.Sections()      // display layout
	fields.All()           // flat field list in form order
	fields.Columns()       // export column headers
	fields.Lookup("pH")    // single field by label

Field labels double as export column headers and record keys, so they
are unique across the whole form.
*/
package fields
