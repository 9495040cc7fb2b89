package game

type Mode string

const (
	ModeStandard Mode = "standard"
	ModeRelaxed  Mode = "relaxed"
)

type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

type DescriberMode string

const (
	DescriberVoice DescriberMode = "voice"
	DescriberText  DescriberMode = "text"
)

// Settings is the immutable triple a player picks before matchmaking.
// Each distinct value identifies one of the 8 waitroom slots.
type Settings struct {
	Mode      Mode          `json:"mode"`
	Level     Difficulty    `json:"level"`
	Describer DescriberMode `json:"describer"`
}

func (s Settings) Valid() bool {
	if s.Mode != ModeStandard && s.Mode != ModeRelaxed {
		return false
	}
	if s.Level != DifficultyEasy && s.Level != DifficultyHard {
		return false
	}
	if s.Describer != DescriberVoice && s.Describer != DescriberText {
		return false
	}
	return true
}
