package recommend

import "github.com/reelpick/reelpick/internal/fuzzy"

// highEnergyReference is the fixed genre term the mood/genre scorer compares
// against: genres lexically close to it score as energetic content.
const highEnergyReference = "high-energy"

// MoodGenreScore turns the mood and physical-state sliders (0-10 each) and
// the requested genre into an affinity score in [0,1]. The slider average and
// the genre's token-sort similarity to the high-energy reference term each
// contribute half of the score.
func MoodGenreScore(mood, physicalState int, genre string) float64 {
	moodComponent := float64(mood+physicalState) / 20
	genreComponent := float64(fuzzy.TokenSortRatio(genre, highEnergyReference)) / 100
	return (moodComponent + genreComponent) / 2
}
