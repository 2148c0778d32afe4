// Package knowledge holds the static NDE reference data: standards tables,
// method descriptions, certification schemes and expert suggestions. All
// structures are initialized once at load and never mutated.
package knowledge

import (
	"fmt"
	"sort"
	"strings"
)

// Method describes one NDE testing method.
type Method struct {
	Description  string   `json:"description"`
	Applications []string `json:"applications"`
	Advantages   []string `json:"advantages"`
	Limitations  []string `json:"limitations"`
}

// Suggestion is one expert recommendation surfaced in the UI.
type Suggestion struct {
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Standards   []string `json:"standards"`
}

// SearchResult is a ranked hit from SearchStandards.
type SearchResult struct {
	Type         string   `json:"type"` // "standard" or "method"
	Organization string   `json:"organization,omitempty"`
	Code         string   `json:"code,omitempty"`
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description"`
	Applications []string `json:"applications,omitempty"`
	Relevance    string   `json:"relevance"` // "high" or "medium"
}

// DefectGuide is interpretation guidance for a defect type.
type DefectGuide struct {
	Description         string   `json:"description"`
	DetectionMethods    []string `json:"detection_methods"`
	EvaluationCriteria  string   `json:"evaluation_criteria"`
	AcceptanceStandards []string `json:"acceptance_standards"`
}

// standards maps organization -> code -> title.
var standards = map[string]map[string]string{
	"ASME": {
		"BPVC":         "ASME Boiler and Pressure Vessel Code",
		"Section V":    "Nondestructive Examination",
		"Section VIII": "Rules for Construction of Pressure Vessels",
		"Section XI":   "Rules for Inservice Inspection of Nuclear Power Plant Components",
	},
	"ASTM": {
		"E94":   "Standard Guide for Radiographic Examination",
		"E114":  "Standard Practice for Ultrasonic Pulse-Echo Straight-Beam Contact Testing",
		"E165":  "Standard Practice for Liquid Penetrant Examination",
		"E709":  "Standard Guide for Magnetic Particle Testing",
		"E1444": "Standard Practice for Magnetic Particle Testing",
		"E1316": "Standard Terminology for Nondestructive Examinations",
	},
	"AWS": {
		"D1.1":  "Structural Welding Code - Steel",
		"D1.5":  "Bridge Welding Code",
		"B1.10": "Guide for the Nondestructive Examination of Welds",
		"B1.11": "Guide for the Visual Examination of Welds",
	},
	"API": {
		"API 510":  "Pressure Vessel Inspection Code",
		"API 570":  "Piping Inspection Code",
		"API 653":  "Tank Inspection, Repair, Alteration, and Reconstruction",
		"API 1104": "Welding of Pipelines and Related Facilities",
	},
	"ISO": {
		"ISO 9712":  "Non-destructive testing - Qualification and certification of NDT personnel",
		"ISO 17640": "Non-destructive testing of welds - Ultrasonic testing",
		"ISO 17636": "Non-destructive testing of welds - Radiographic testing",
	},
}

var methods = map[string]Method{
	"Ultrasonic Testing (UT)": {
		Description:  "Uses high-frequency sound waves to detect internal defects",
		Applications: []string{"Thickness measurement", "Flaw detection", "Material characterization"},
		Advantages:   []string{"Deep penetration", "High sensitivity", "Real-time results"},
		Limitations:  []string{"Requires coupling medium", "Complex geometries challenging", "Skilled operator needed"},
	},
	"Radiographic Testing (RT)": {
		Description:  "Uses X-rays or gamma rays to create images of internal structure",
		Applications: []string{"Weld inspection", "Casting examination", "Pipeline inspection"},
		Advantages:   []string{"Permanent record", "Good for complex geometries", "Detects internal defects"},
		Limitations:  []string{"Radiation safety concerns", "Access to both sides needed", "Expensive equipment"},
	},
	"Magnetic Particle Testing (MT)": {
		Description:  "Uses magnetic fields to detect surface and near-surface discontinuities",
		Applications: []string{"Crack detection", "Weld inspection", "Component inspection"},
		Advantages:   []string{"Fast inspection", "Low cost", "Easy to interpret"},
		Limitations:  []string{"Ferromagnetic materials only", "Surface preparation required", "Limited depth"},
	},
	"Liquid Penetrant Testing (PT)": {
		Description:  "Uses liquid penetrants to detect surface-breaking defects",
		Applications: []string{"Crack detection", "Porosity detection", "Leak detection"},
		Advantages:   []string{"Simple process", "Low cost", "Works on any material"},
		Limitations:  []string{"Surface defects only", "Clean surface required", "Multiple steps"},
	},
	"Eddy Current Testing (ET)": {
		Description:  "Uses electromagnetic induction to detect defects and measure properties",
		Applications: []string{"Tube inspection", "Crack detection", "Conductivity measurement"},
		Advantages:   []string{"No coupling required", "Fast inspection", "Automated systems"},
		Limitations:  []string{"Conductive materials only", "Limited depth", "Complex interpretation"},
	},
	"Visual Testing (VT)": {
		Description:  "Direct visual examination of surfaces and components",
		Applications: []string{"General inspection", "Weld quality", "Surface condition"},
		Advantages:   []string{"Simple and fast", "Low cost", "No special equipment"},
		Limitations:  []string{"Surface defects only", "Subjective interpretation", "Lighting dependent"},
	},
}

var suggestions = []Suggestion{
	{
		Category:    "Method Selection",
		Title:       "Ultrasonic Testing for Thick Sections",
		Description: "Use UT for components > 2 inches thick where RT becomes impractical",
		Standards:   []string{"ASME Section V", "ASTM E114"},
	},
	{
		Category:    "Quality Assurance",
		Title:       "Calibration Block Requirements",
		Description: "Use appropriate calibration standards for each testing method",
		Standards:   []string{"ASTM E164", "ASME Section V"},
	},
	{
		Category:    "Safety",
		Title:       "Radiation Safety Protocol",
		Description: "Implement ALARA principles for radiographic testing operations",
		Standards:   []string{"10 CFR 20", "ASME Section V"},
	},
	{
		Category:    "Documentation",
		Title:       "Inspection Report Requirements",
		Description: "Include all required elements per applicable codes and standards",
		Standards:   []string{"API 510", "ASME Section XI"},
	},
	{
		Category:    "Training",
		Title:       "Personnel Certification",
		Description: "Ensure inspectors meet SNT-TC-1A or CP-189 requirements",
		Standards:   []string{"SNT-TC-1A", "ASNT CP-189"},
	},
	{
		Category:    "Equipment",
		Title:       "Calibration and Verification",
		Description: "Regular calibration of NDE equipment per manufacturer specifications",
		Standards:   []string{"ASTM E543", "ASME Section V"},
	},
}

var defectGuides = map[string]DefectGuide{
	"crack": {
		Description:         "Linear discontinuity caused by stress concentration",
		DetectionMethods:    []string{"PT", "MT", "UT", "ET"},
		EvaluationCriteria:  "Length, depth, orientation relative to stress",
		AcceptanceStandards: []string{"ASME Section VIII", "AWS D1.1", "API 579"},
	},
	"porosity": {
		Description:         "Gas entrapment creating spherical voids",
		DetectionMethods:    []string{"RT", "UT"},
		EvaluationCriteria:  "Size, distribution, percentage of weld area",
		AcceptanceStandards: []string{"AWS D1.1", "ASME Section IX"},
	},
	"inclusion": {
		Description:         "Foreign material trapped in weld metal",
		DetectionMethods:    []string{"RT", "UT"},
		EvaluationCriteria:  "Size, type, location within weld",
		AcceptanceStandards: []string{"AWS D1.1", "ASME Section VIII"},
	},
	"lack_of_fusion": {
		Description:         "Incomplete fusion between weld passes or base metal",
		DetectionMethods:    []string{"UT", "RT"},
		EvaluationCriteria:  "Length, location, depth",
		AcceptanceStandards: []string{"AWS D1.1", "ASME Section IX"},
	},
}

const maxSearchResults = 10

// Suggestions returns the expert suggestion list.
func Suggestions() []Suggestion {
	return suggestions
}

// SearchStandards searches the standards and method tables. High-relevance
// hits (query appears in the code or name) sort before medium ones; at most
// ten results are returned.
func SearchStandards(query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	terms := strings.Fields(q)

	var results []SearchResult

	for org, codes := range standards {
		for code, title := range codes {
			codeLower, titleLower := strings.ToLower(code), strings.ToLower(title)
			matched := strings.Contains(codeLower, q) || strings.Contains(titleLower, q)
			if !matched {
				for _, term := range terms {
					if strings.Contains(titleLower, term) {
						matched = true
						break
					}
				}
			}
			if matched {
				relevance := "medium"
				if strings.Contains(codeLower, q) {
					relevance = "high"
				}
				results = append(results, SearchResult{
					Type:         "standard",
					Organization: org,
					Code:         code,
					Description:  title,
					Relevance:    relevance,
				})
			}
		}
	}

	for name, m := range methods {
		nameLower := strings.ToLower(name)
		matched := strings.Contains(nameLower, q) || strings.Contains(strings.ToLower(m.Description), q)
		if !matched {
			for _, app := range m.Applications {
				if strings.Contains(strings.ToLower(app), q) {
					matched = true
					break
				}
			}
		}
		if matched {
			relevance := "medium"
			if strings.Contains(nameLower, q) {
				relevance = "high"
			}
			results = append(results, SearchResult{
				Type:         "method",
				Name:         name,
				Description:  m.Description,
				Applications: m.Applications,
				Relevance:    relevance,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance == "high" && results[j].Relevance != "high"
	})

	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results
}

// MethodDetails returns the method matching name (substring, case-insensitive)
// or ok=false.
func MethodDetails(name string) (string, Method, bool) {
	needle := strings.ToLower(name)
	for full, m := range methods {
		if strings.Contains(strings.ToLower(full), needle) {
			return full, m, true
		}
	}
	return "", Method{}, false
}

// DefectInterpretation returns guidance for a defect type, or ok=false.
func DefectInterpretation(defectType string) (DefectGuide, bool) {
	g, ok := defectGuides[strings.ToLower(strings.TrimSpace(defectType))]
	return g, ok
}

// InspectionPlanPrompt builds the LLM prompt for an inspection plan request.
func InspectionPlanPrompt(componentType, material, thickness, serviceConditions string) string {
	return fmt.Sprintf(`Generate a comprehensive NDE inspection plan for the following component:

Component Type: %s
Material: %s
Thickness: %s
Service Conditions: %s

Include:
1. Recommended NDE methods with justification
2. Applicable codes and standards
3. Inspection sequence and timing
4. Acceptance criteria
5. Personnel qualification requirements
6. Documentation requirements

Provide specific, actionable recommendations suitable for engineering implementation.`,
		componentType, material, thickness, serviceConditions)
}
