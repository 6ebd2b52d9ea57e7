package chat

// Gender is the persona selection offered on the select screen.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// PersonaConfig is the fixed configuration sent to the backend for a
// gender choice. Not user-editable.
type PersonaConfig struct {
	Name        string
	Gender      Gender
	Personality string
	SpeechStyle string
}

var personaConfigs = map[Gender]PersonaConfig{
	GenderFemale: {
		Name:        "Mia",
		Gender:      GenderFemale,
		Personality: "sweet, bold, and playful",
		SpeechStyle: "warm, flirty, and direct",
	},
	GenderMale: {
		Name:        "Kai",
		Gender:      GenderMale,
		Personality: "calm, warm, and perceptive",
		SpeechStyle: "thoughtful, genuine, and steady",
	},
}

// PersonaFor returns the configuration for a gender choice. Unknown
// choices fall back to the female persona.
func PersonaFor(g Gender) PersonaConfig {
	if cfg, ok := personaConfigs[g]; ok {
		return cfg
	}
	return personaConfigs[GenderFemale]
}

// Opposite returns the counterpart's assumed gender, kept opposite to
// the persona's for pronoun consistency.
func Opposite(g Gender) Gender {
	if g == GenderFemale {
		return GenderMale
	}
	return GenderFemale
}
