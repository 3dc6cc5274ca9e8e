package uwcolor

const (
	// MinStrength and MaxStrength bound caller supplied strength overrides.
	MinStrength = 0.5
	MaxStrength = 2.0
	// StrengthStep is the granularity offered to interactive callers.
	StrengthStep = 0.1
)

const (
	defaultQuality  = 90
	defaultFetchMax = 32 << 20
)

// DefaultSampleURL points to the image used when no photo is supplied.
const DefaultSampleURL = "https://i.kym-cdn.com/entries/icons/facebook/000/022/747/Do_Something_meme_banner_imag.jpg"

// DepthChoices lists the approximate depths (meters) offered for selection.
var DepthChoices = []int{5, 10, 15, 20, 25, 30}
