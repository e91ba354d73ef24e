package manifest

// User-input field keys. All fields are required; values are free text and
// are reproduced verbatim in the reports, with no validation or numeric
// parsing — a non-numeric "weight" comes out exactly as typed. That
// pass-through is the contract, not an oversight.
const (
	FieldRFMCategory       = "rfm_category"
	FieldVendorCode        = "vendor_code"
	FieldVendorName        = "vendor_name"
	FieldGender            = "gender"
	FieldRFMOrigin         = "rfm_origin"
	FieldRFMDestination    = "rfm_destination"
	FieldCharge            = "charge"
	FieldPassengerWeight   = "passenger_weight"
	FieldBaggageWeight     = "baggage_weight"
	FieldTimeReported      = "time_reported"
	FieldReturnCategory    = "return_category"
	FieldSupplier          = "supplier"
	FieldReturnOrigin      = "return_origin"
	FieldReturnDestination = "return_destination"
)

// RequiredFields lists every user-input key, in form order.
var RequiredFields = []string{
	FieldRFMCategory,
	FieldVendorCode,
	FieldVendorName,
	FieldGender,
	FieldRFMOrigin,
	FieldRFMDestination,
	FieldCharge,
	FieldPassengerWeight,
	FieldBaggageWeight,
	FieldTimeReported,
	FieldReturnCategory,
	FieldSupplier,
	FieldReturnOrigin,
	FieldReturnDestination,
}

// UserInputs maps field keys to the free-text values broadcast across every
// row of the reports.
type UserInputs map[string]string

// Validate reports the first required field that is absent. A present but
// empty value is acceptable; a missing key is not.
func (in UserInputs) Validate() error {
	for _, f := range RequiredFields {
		if _, ok := in[f]; !ok {
			return &MissingFieldError{Field: f}
		}
	}
	return nil
}

// Column is one output column: a name and its values. Names are not unique;
// the report layouts include several blank and whitespace-only spacer
// columns that must stay distinct, which is why a Report is an ordered
// slice rather than a name-keyed map.
type Column struct {
	Name   string
	Values []string
}

// Report is a fixed-layout output table, written to a workbook sheet of the
// same name.
type Report struct {
	Name    string
	Columns []Column
}

// RowCount reports the number of data rows in the report.
func (r Report) RowCount() int {
	if len(r.Columns) == 0 {
		return 0
	}
	return len(r.Columns[0].Values)
}

// Sheet names of the output workbook.
const (
	SheetRFM      = "RFM"
	SheetManifest = "Manifest"
	SheetReturn   = "Return Manifest"
)

// Reports bundles the three outputs of a reconciliation run.
type Reports struct {
	RFM      Report
	Manifest Report
	Return   Report
}

// BuildReports maps a reconciliation result and the user metadata into the
// three fixed-layout reports. RFM and Manifest are row-aligned over the
// rows missing from the Portal roster; Return Manifest covers the rows
// missing from the POB roster. Column names and order are fixed, including
// the blank-named spacers.
func BuildReports(res Result, pobNED, pobName, portalNED, portalName string, in UserInputs) (Reports, error) {
	if err := in.Validate(); err != nil {
		return Reports{}, err
	}

	rfmNEDs, err := res.MissingInSecond.Column(pobNED)
	if err != nil {
		return Reports{}, err
	}
	rfmNames, err := res.MissingInSecond.Column(pobName)
	if err != nil {
		return Reports{}, err
	}
	retNEDs, err := res.MissingInFirst.Column(portalNED)
	if err != nil {
		return Reports{}, err
	}
	retNames, err := res.MissingInFirst.Column(portalName)
	if err != nil {
		return Reports{}, err
	}

	nOut := len(rfmNEDs)
	nRet := len(retNEDs)

	rfm := Report{Name: SheetRFM, Columns: []Column{
		{Name: "Passenger Category", Values: uniform(in[FieldRFMCategory], nOut)},
		{Name: "NED Pass No.", Values: rfmNEDs},
		{Name: "Travelling Vendor Code", Values: uniform(in[FieldVendorCode], nOut)},
		{Name: "Vendor Name", Values: uniform(in[FieldVendorName], nOut)},
		{Name: "Vendor Employee Name", Values: rfmNames},
		{Name: "Gender", Values: uniform(in[FieldGender], nOut)},
		{Name: "Designation", Values: uniform("", nOut)},
		{Name: "Originating Point", Values: uniform(in[FieldRFMOrigin], nOut)},
		{Name: "Destination Point", Values: uniform(in[FieldRFMDestination], nOut)},
		{Name: "", Values: uniform("", nOut)},
		{Name: "Charge", Values: uniform(in[FieldCharge], nOut)},
	}}

	// Row-aligned with RFM: same count, same order.
	man := Report{Name: SheetManifest, Columns: []Column{
		{Name: "Passenger Weight", Values: uniform(in[FieldPassengerWeight], nOut)},
		{Name: "Baggage Weight", Values: uniform(in[FieldBaggageWeight], nOut)},
		{Name: "", Values: uniform("", nOut)},
		{Name: " ", Values: uniform("", nOut)},
		{Name: "  ", Values: uniform("", nOut)},
		{Name: "Time Reported", Values: uniform(in[FieldTimeReported], nOut)},
	}}

	ret := Report{Name: SheetReturn, Columns: []Column{
		{Name: "Passenger Category", Values: uniform(in[FieldReturnCategory], nRet)},
		{Name: "Smart Card No.", Values: retNEDs},
		{Name: "Supplier", Values: uniform(in[FieldSupplier], nRet)},
		{Name: "Vendor Employee Name", Values: retNames},
		{Name: "Gender", Values: uniform(in[FieldGender], nRet)},
		{Name: "Designation", Values: uniform("", nRet)},
		{Name: "", Values: uniform("", nRet)},
		{Name: "Charge", Values: uniform(in[FieldCharge], nRet)},
		{Name: "Pax wt.", Values: uniform(in[FieldPassengerWeight], nRet)},
		{Name: "Baggage", Values: uniform(in[FieldBaggageWeight], nRet)},
		{Name: "Originating Point", Values: uniform(in[FieldReturnOrigin], nRet)},
		{Name: "Destination Point", Values: uniform(in[FieldReturnDestination], nRet)},
	}}

	return Reports{RFM: rfm, Manifest: man, Return: ret}, nil
}

func uniform(v string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = v
	}
	return out
}
