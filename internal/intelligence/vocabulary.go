package intelligence

import (
	"regexp"
	"strings"
)

// Keyword vocabularies are ordered: matching reports keywords in table order.

var negativeMoodKeywords = []string{
	"anxious", "sad", "worried", "stressed", "overwhelmed", "scared", "depressed", "crying",
}

var positiveMoodKeywords = []string{
	"happy", "excited", "joyful", "grateful", "peaceful", "content", "calm",
}

// emergencyKeywords flag a logged symptom as an emergency in risk scoring.
var emergencyKeywords = []string{
	"bleeding", "heavy bleeding", "blood",
	"fainting", "fainted", "passed out",
	"severe pain", "intense pain", "unbearable pain",
	"swelling", "sudden swelling", "face swelling",
	"shortness of breath", "can't breathe",
	"severe headache", "vision changes", "blurred vision",
	"high fever", "fever above 101",
	"contractions", "regular contractions", "water broke",
}

// criticalSafetyKeywords escalate a conversational message immediately.
var criticalSafetyKeywords = []string{
	"bleeding", "heavy bleeding", "blood", "hemorrhage",
	"fainting", "fainted", "passed out", "unconscious",
	"severe pain", "intense pain", "unbearable pain", "excruciating",
	"water broke", "water breaking", "fluid leaking",
	"contractions", "regular contractions", "labor pains",
	"can't breathe", "difficulty breathing", "shortness of breath",
	"chest pain", "heart racing", "palpitations",
	"severe headache", "migraine", "vision changes", "blurred vision",
	"high fever", "fever above 101", "burning up",
	"sudden swelling", "face swelling", "hand swelling",
	"dizziness", "lightheaded", "going to faint",
}

var warningSafetyKeywords = []string{
	"spotting", "light bleeding", "cramping", "sharp pain",
	"nausea", "vomiting", "can't keep food down",
	"headache", "tired", "exhausted", "weak",
	"swelling", "puffy", "tight rings",
	"back pain", "pelvic pressure", "round ligament pain",
}

type advicePattern struct {
	phrase      string
	replacement string
	re          *regexp.Regexp
}

func newAdvicePattern(phrase, replacement string) advicePattern {
	return advicePattern{
		phrase:      phrase,
		replacement: replacement,
		re:          regexp.MustCompile("(?i)" + regexp.QuoteMeta(phrase)),
	}
}

// unsafeAdvicePatterns lists phrases an agent response must not contain,
// each with the phrase that replaces it.
var unsafeAdvicePatterns = []advicePattern{
	newAdvicePattern("diagnose", "suggest you discuss with your healthcare provider"),
	newAdvicePattern("diagnosis", "possible concern to discuss with your doctor"),
	newAdvicePattern("you have", "you might be experiencing"),
	newAdvicePattern("it is definitely", "it could be"),
	newAdvicePattern("take medication", "ask your doctor about medication options"),
	newAdvicePattern("stop taking", "discuss with your doctor before stopping"),
	newAdvicePattern("increase dosage", "consult your healthcare provider about dosage"),
	newAdvicePattern("don't see a doctor", "consider seeing your healthcare provider"),
	newAdvicePattern("avoid medical care", "seek appropriate medical guidance"),
	newAdvicePattern("skip appointment", "keep your scheduled appointments"),
	newAdvicePattern("this is normal", "this can be common, but discuss with your doctor"),
	newAdvicePattern("nothing to worry about", "worth mentioning to your healthcare provider"),
	newAdvicePattern("ignore it", "monitor and discuss with your doctor if it continues"),
}

type keyedText struct {
	key  string
	text string
}

// comfortMeasures are checked in order; the first key contained in the
// symptom text wins.
var comfortMeasures = []keyedText{
	{"nausea", "try ginger tea, eat small frequent meals, and keep crackers by your bed"},
	{"headache", "rest in a quiet, dark room, stay hydrated, and try a cold compress"},
	{"back pain", "use proper posture, wear supportive shoes, and try gentle stretching"},
	{"fatigue", "rest when you can, take short naps, and don't overexert yourself"},
	{"cramping", "rest, stay hydrated, and use a warm compress if comfortable"},
	{"swelling", "elevate your feet, stay hydrated, and avoid standing for long periods"},
}

const defaultComfortMeasure = "rest, stay hydrated, and listen to your body"

// symptomAdvice is keyed by the exact lower-cased symptom label.
var symptomAdvice = map[string]string{
	"nausea":             "Try ginger tea, small frequent meals, and crackers before getting up",
	"fatigue":            "Rest when possible, take short naps, and don't overexert yourself",
	"back pain":          "Practice good posture, use supportive pillows, and try prenatal yoga",
	"heartburn":          "Eat smaller meals, avoid spicy foods, and don't lie down after eating",
	"leg cramps":         "Stay hydrated, stretch before bed, and ensure adequate magnesium",
	"constipation":       "Increase fiber intake, drink plenty of water, and stay active",
	"breast tenderness":  "Wear a supportive bra and use warm or cold compresses",
	"frequent urination": "Stay hydrated but limit fluids before bedtime",
	"mood swings":        "Practice relaxation techniques and talk about your feelings",
	"headache":           "Stay hydrated, rest in a quiet room, and use a cold compress",
}

const defaultSymptomAdvice = "Discuss this symptom with your healthcare provider for personalized advice"

// riskMitigationAdvice is keyed by risk factor category.
var riskMitigationAdvice = map[string]string{
	CategoryEmergencySymptoms: "Monitor symptoms closely and contact healthcare provider if they worsen",
	CategorySymptomPatterns:   "Track recurring symptoms and discuss patterns with your doctor",
	CategoryMoodPatterns:      "Consider emotional support resources and stress management techniques",
	CategoryTaskAdherence:     "Break tasks into smaller steps and set realistic daily goals",
	CategoryNutrition:         "Focus on pregnancy-safe foods and consult a nutritionist if needed",
}

const defaultMitigationAdvice = "Monitor this area and consult healthcare provider if concerned"

type taskBucketRule struct {
	category string
	keywords []string
}

// taskBuckets are checked in order; the first rule with a matching keyword
// wins and unmatched tasks fall into TaskCategoryOther.
var taskBuckets = []taskBucketRule{
	{TaskCategoryMedication, []string{"vitamin", "medication"}},
	{TaskCategoryHydration, []string{"water", "drink"}},
	{TaskCategoryRest, []string{"rest", "sleep"}},
	{TaskCategoryExercise, []string{"walk", "exercise"}},
	{TaskCategoryMedical, []string{"appointment", "doctor"}},
}

// containsAny reports whether text contains any keyword.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// matchAll returns every keyword contained in text, in table order.
func matchAll(text string, keywords []string) []string {
	matches := []string{}
	for _, k := range keywords {
		if strings.Contains(text, k) {
			matches = append(matches, k)
		}
	}
	return matches
}

func isNegativeMood(state string) bool {
	return containsAny(strings.ToLower(state), negativeMoodKeywords)
}

func isPositiveMood(state string) bool {
	return containsAny(strings.ToLower(state), positiveMoodKeywords)
}

// MitigationAdvice returns advice for a risk factor category, or a generic
// fallback for unknown categories.
func MitigationAdvice(category string) string {
	if advice, ok := riskMitigationAdvice[category]; ok {
		return advice
	}
	return defaultMitigationAdvice
}

// SymptomAdvice returns self-care advice for a symptom label, or a generic
// fallback for unknown symptoms.
func SymptomAdvice(symptom string) string {
	if advice, ok := symptomAdvice[strings.ToLower(symptom)]; ok {
		return advice
	}
	return defaultSymptomAdvice
}

// ComfortMeasures returns comfort suggestions for free-text symptom input.
func ComfortMeasures(symptom string) string {
	lower := strings.ToLower(symptom)
	for _, m := range comfortMeasures {
		if strings.Contains(lower, m.key) {
			return m.text
		}
	}
	return defaultComfortMeasure
}
