package extraction

import "regexp"

// Parameter categories used for grouping and risk aggregation.
const (
	CategoryCardiovascular = "Cardiovascular"
	CategoryMetabolic      = "Metabolic"
	CategoryLiver          = "Liver Function"
	CategoryKidney         = "Kidney Function"
	CategoryHormonal       = "Hormonal"
	CategoryNutritional    = "Nutritional"
	CategoryInflammatory   = "Inflammatory"
	CategoryHematology     = "Hematology"
	CategoryGeneral        = "General"
)

// CutPoints hold the clinical thresholds used to derive a status.
// A zero threshold means "no cut-point on that side".
type CutPoints struct {
	Low  float64
	High float64
}

// ParameterSpec is the static configuration for one known parameter:
// extraction patterns, plausibility bounds and clinical reference data.
type ParameterSpec struct {
	Name           string
	Category       string
	Unit           string
	Min, Max       float64 // medically plausible closed range
	ReferenceRange string
	Cuts           CutPoints
	// Patterns are tried in order; the first numeric capture group wins.
	Patterns []*regexp.Regexp
	// TablePatterns capture the middle (result) field of a
	// "name  result  reference-range" row so the range bound is not
	// mistaken for the measurement.
	TablePatterns []*regexp.Regexp
	// Terms are the search keys used by the fuzzy proximity scanner.
	Terms []string
}

const num = `(\d+(?:\.\d+)?)`

func pats(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+e))
	}
	return out
}

// catalog is the single static configuration for every known parameter,
// keyed by canonical name. Constructed once at process start.
var catalog = map[string]*ParameterSpec{
	"Total Cholesterol": {
		Name: "Total Cholesterol", Category: CategoryCardiovascular, Unit: "mg/dL",
		Min: 100, Max: 400, ReferenceRange: "<200 mg/dL",
		Cuts: CutPoints{High: 200},
		Patterns: pats(
			`total\s+cholesterol[^0-9]{0,20}`+num,
			`cholesterol[\s,]+total[^0-9]{0,20}`+num,
			`serum\s+cholesterol[^0-9]{0,20}`+num,
		),
		TablePatterns: pats(
			`total\s+cholesterol\s+`+num+`\s+(?:mg/dl\s+)?[<>]?\s*\d`,
			`cholesterol\s+`+num+`\s+(?:mg/dl\s+)?[<>]?\s*\d`,
		),
		Terms: []string{"total cholesterol", "cholesterol"},
	},
	"LDL Cholesterol": {
		Name: "LDL Cholesterol", Category: CategoryCardiovascular, Unit: "mg/dL",
		Min: 50, Max: 300, ReferenceRange: "<100 mg/dL",
		Cuts: CutPoints{High: 130},
		Patterns: pats(
			`ldl[\s-]*(?:cholesterol|c)?[^0-9]{0,20}`+num,
			`low\s+density\s+lipoprotein[^0-9]{0,20}`+num,
		),
		TablePatterns: pats(`ldl(?:[\s-]*cholesterol)?\s+` + num + `\s+(?:mg/dl\s+)?[<>]?\s*\d`),
		Terms:         []string{"ldl"},
	},
	"HDL Cholesterol": {
		Name: "HDL Cholesterol", Category: CategoryCardiovascular, Unit: "mg/dL",
		Min: 20, Max: 120, ReferenceRange: ">40 mg/dL",
		Cuts: CutPoints{Low: 40},
		Patterns: pats(
			`hdl[\s-]*(?:cholesterol|c)?[^0-9]{0,20}`+num,
			`high\s+density\s+lipoprotein[^0-9]{0,20}`+num,
		),
		TablePatterns: pats(`hdl(?:[\s-]*cholesterol)?\s+` + num + `\s+(?:mg/dl\s+)?[<>]?\s*\d`),
		Terms:         []string{"hdl"},
	},
	"Triglycerides": {
		Name: "Triglycerides", Category: CategoryCardiovascular, Unit: "mg/dL",
		Min: 30, Max: 1000, ReferenceRange: "<150 mg/dL",
		Cuts:          CutPoints{High: 150},
		Patterns:      pats(`triglycerides?[^0-9]{0,20}` + num),
		TablePatterns: pats(`triglycerides?\s+` + num + `\s+(?:mg/dl\s+)?[<>]?\s*\d`),
		Terms:         []string{"triglyceride"},
	},
	"Glucose": {
		Name: "Glucose", Category: CategoryMetabolic, Unit: "mg/dL",
		Min: 30, Max: 600, ReferenceRange: "70-100 mg/dL",
		Cuts: CutPoints{Low: 70, High: 100},
		Patterns: pats(
			`(?:fasting\s+)?(?:blood\s+)?glucose[^0-9]{0,20}`+num,
			`\bfbs[^0-9]{0,15}`+num,
			`\bsugar[^0-9]{0,15}`+num,
		),
		TablePatterns: pats(`glucose\s+` + num + `\s+(?:mg/dl\s+)?\d+\s*[-–]\s*\d`),
		Terms:         []string{"glucose", "fasting sugar"},
	},
	"HbA1c": {
		Name: "HbA1c", Category: CategoryMetabolic, Unit: "%",
		Min: 3.0, Max: 20.0, ReferenceRange: "<5.7%",
		Cuts: CutPoints{High: 5.7},
		Patterns: pats(
			`hba1c[^0-9]{0,20}`+num,
			`hb\s*a1c[^0-9]{0,20}`+num,
			`glycated\s+h(?:a)?emoglobin[^0-9]{0,20}`+num,
			`a1c[^0-9]{0,15}`+num,
		),
		TablePatterns: pats(`hba1c\s+` + num + `\s*%?\s+[<>]?\s*\d`),
		Terms:         []string{"hba1c", "a1c"},
	},
	"Systolic BP": {
		Name: "Systolic BP", Category: CategoryCardiovascular, Unit: "mmHg",
		Min: 70, Max: 250, ReferenceRange: "<120 mmHg",
		Cuts: CutPoints{High: 130},
		// Captured from the systolic/diastolic pair; see bloodPressureRe.
		Terms: []string{"systolic"},
	},
	"Diastolic BP": {
		Name: "Diastolic BP", Category: CategoryCardiovascular, Unit: "mmHg",
		Min: 40, Max: 150, ReferenceRange: "<80 mmHg",
		Cuts:  CutPoints{High: 85},
		Terms: []string{"diastolic"},
	},
	"CRP": {
		Name: "CRP", Category: CategoryInflammatory, Unit: "mg/L",
		Min: 0, Max: 50, ReferenceRange: "<3 mg/L",
		Cuts: CutPoints{High: 3},
		Patterns: pats(
			`c[\s-]*reactive\s+protein[^0-9]{0,20}`+num,
			`\bh?s?[\s-]*crp[^0-9]{0,15}`+num,
		),
		TablePatterns: pats(`crp\s+` + num + `\s+(?:mg/l\s+)?[<>]?\s*\d`),
		Terms:         []string{"crp", "c-reactive"},
	},
	"Vitamin D": {
		Name: "Vitamin D", Category: CategoryNutritional, Unit: "ng/mL",
		Min: 0, Max: 150, ReferenceRange: "30-100 ng/mL",
		Cuts: CutPoints{Low: 30, High: 100},
		Patterns: pats(
			`vitamin\s*d\s*(?:3|total)?[^0-9]{0,20}`+num,
			`25[\s-]*oh[\s-]*(?:vitamin\s*)?d[^0-9]{0,20}`+num,
		),
		TablePatterns: pats(`vitamin\s*d\s+` + num + `\s+(?:ng/ml\s+)?\d+\s*[-–]\s*\d`),
		Terms:         []string{"vitamin d"},
	},
	"Vitamin B12": {
		Name: "Vitamin B12", Category: CategoryNutritional, Unit: "pg/mL",
		Min: 50, Max: 2000, ReferenceRange: "200-900 pg/mL",
		Cuts: CutPoints{Low: 200, High: 900},
		Patterns: pats(
			`vitamin\s*b\s*12[^0-9]{0,20}`+num,
			`cobalamin[^0-9]{0,20}`+num,
		),
		TablePatterns: pats(`vitamin\s*b\s*12\s+` + num + `\s+(?:pg/ml\s+)?\d+\s*[-–]\s*\d`),
		Terms:         []string{"b12", "cobalamin"},
	},
	"ALT": {
		Name: "ALT", Category: CategoryLiver, Unit: "U/L",
		Min: 1, Max: 500, ReferenceRange: "7-56 U/L",
		Cuts: CutPoints{High: 56},
		Patterns: pats(
			`\balt\b[^0-9]{0,15}`+num,
			`sgpt[^0-9]{0,15}`+num,
			`alanine\s+(?:amino)?transferase[^0-9]{0,20}`+num,
		),
		TablePatterns: pats(`(?:alt|sgpt)\s+` + num + `\s+(?:u/l\s+)?\d+\s*[-–]\s*\d`),
		Terms:         []string{"alt", "sgpt"},
	},
	"AST": {
		Name: "AST", Category: CategoryLiver, Unit: "U/L",
		Min: 1, Max: 500, ReferenceRange: "10-40 U/L",
		Cuts: CutPoints{High: 40},
		Patterns: pats(
			`\bast\b[^0-9]{0,15}`+num,
			`sgot[^0-9]{0,15}`+num,
			`aspartate\s+(?:amino)?transferase[^0-9]{0,20}`+num,
		),
		TablePatterns: pats(`(?:ast|sgot)\s+` + num + `\s+(?:u/l\s+)?\d+\s*[-–]\s*\d`),
		Terms:         []string{"ast", "sgot"},
	},
	"Creatinine": {
		Name: "Creatinine", Category: CategoryKidney, Unit: "mg/dL",
		Min: 0.3, Max: 5.0, ReferenceRange: "0.7-1.3 mg/dL",
		Cuts:          CutPoints{Low: 0.7, High: 1.3},
		Patterns:      pats(`creatinine[^0-9]{0,20}` + num),
		TablePatterns: pats(`creatinine\s+` + num + `\s+(?:mg/dl\s+)?\d*\.?\d+\s*[-–]\s*\d`),
		Terms:         []string{"creatinine"},
	},
	"TSH": {
		Name: "TSH", Category: CategoryHormonal, Unit: "mIU/L",
		Min: 0.01, Max: 50, ReferenceRange: "0.4-4.0 mIU/L",
		Cuts: CutPoints{Low: 0.4, High: 4.0},
		Patterns: pats(
			`\btsh\b[^0-9]{0,15}`+num,
			`thyroid\s+stimulating\s+hormone[^0-9]{0,20}`+num,
		),
		TablePatterns: pats(`tsh\s+` + num + `\s+(?:miu/l\s+)?\d*\.?\d+\s*[-–]\s*\d`),
		Terms:         []string{"tsh", "thyroid"},
	},
	"Hemoglobin": {
		Name: "Hemoglobin", Category: CategoryHematology, Unit: "g/dL",
		Min: 5, Max: 22, ReferenceRange: "12-17.5 g/dL",
		Cuts: CutPoints{Low: 12, High: 17.5},
		Patterns: pats(
			`h(?:a)?emoglobin[^0-9]{0,20}`+num,
			`\bhgb\b[^0-9]{0,15}`+num,
			`\bhb\b[^0-9]{0,12}`+num,
		),
		TablePatterns: pats(`h(?:a)?emoglobin\s+` + num + `\s+(?:g/dl\s+)?\d+\s*[-–]\s*\d`),
		Terms:         []string{"hemoglobin", "haemoglobin"},
	},
}

// bloodPressureRe matches a systolic/diastolic pair like "BP 120/80" or
// "Blood Pressure: 130 / 85 mmHg".
var bloodPressureRe = regexp.MustCompile(`(?i)(?:blood\s+pressure|b\.?p\.?)[^0-9]{0,15}(\d{2,3})\s*/\s*(\d{2,3})`)

// patternOrder fixes the iteration order over the catalog so generator
// output is deterministic across runs.
var patternOrder = []string{
	"Total Cholesterol",
	"LDL Cholesterol",
	"HDL Cholesterol",
	"Triglycerides",
	"Glucose",
	"HbA1c",
	"CRP",
	"Vitamin D",
	"Vitamin B12",
	"ALT",
	"AST",
	"Creatinine",
	"TSH",
	"Hemoglobin",
}

// Lookup returns the spec for a canonical parameter name, or nil.
func Lookup(name string) *ParameterSpec {
	return catalog[name]
}

// CanonicalName maps loose parameter names (as returned by the LLM or
// found in documents) onto catalog keys. Returns "" when unknown.
func CanonicalName(name string) string {
	n := normalizeName(name)
	if alias, ok := nameAliases[n]; ok {
		return alias
	}
	return ""
}

var nameAliases = map[string]string{
	"total cholesterol":           "Total Cholesterol",
	"cholesterol":                 "Total Cholesterol",
	"cholesterol total":           "Total Cholesterol",
	"ldl":                         "LDL Cholesterol",
	"ldl cholesterol":             "LDL Cholesterol",
	"ldl-c":                       "LDL Cholesterol",
	"low density lipoprotein":     "LDL Cholesterol",
	"hdl":                         "HDL Cholesterol",
	"hdl cholesterol":             "HDL Cholesterol",
	"hdl-c":                       "HDL Cholesterol",
	"high density lipoprotein":    "HDL Cholesterol",
	"triglyceride":                "Triglycerides",
	"triglycerides":               "Triglycerides",
	"glucose":                     "Glucose",
	"fasting glucose":             "Glucose",
	"blood glucose":               "Glucose",
	"fasting blood sugar":         "Glucose",
	"fbs":                         "Glucose",
	"hba1c":                       "HbA1c",
	"hb a1c":                      "HbA1c",
	"a1c":                         "HbA1c",
	"glycated hemoglobin":         "HbA1c",
	"glycated haemoglobin":        "HbA1c",
	"systolic":                    "Systolic BP",
	"systolic bp":                 "Systolic BP",
	"systolic blood pressure":     "Systolic BP",
	"diastolic":                   "Diastolic BP",
	"diastolic bp":                "Diastolic BP",
	"diastolic blood pressure":    "Diastolic BP",
	"crp":                         "CRP",
	"hs-crp":                      "CRP",
	"hscrp":                       "CRP",
	"c-reactive protein":          "CRP",
	"c reactive protein":          "CRP",
	"vitamin d":                   "Vitamin D",
	"vitamin d3":                  "Vitamin D",
	"25-oh vitamin d":             "Vitamin D",
	"25 oh vitamin d":             "Vitamin D",
	"vitamin b12":                 "Vitamin B12",
	"b12":                         "Vitamin B12",
	"cobalamin":                   "Vitamin B12",
	"alt":                         "ALT",
	"sgpt":                        "ALT",
	"alanine aminotransferase":    "ALT",
	"alanine transferase":         "ALT",
	"ast":                         "AST",
	"sgot":                        "AST",
	"aspartate aminotransferase":  "AST",
	"aspartate transferase":       "AST",
	"creatinine":                  "Creatinine",
	"serum creatinine":            "Creatinine",
	"tsh":                         "TSH",
	"thyroid stimulating hormone": "TSH",
	"hemoglobin":                  "Hemoglobin",
	"haemoglobin":                 "Hemoglobin",
	"hgb":                         "Hemoglobin",
	"hb":                          "Hemoglobin",
}
