package bc1

import (
	"github.com/dxtlt/dxt-lossless-transform-go/dxterrors"
	"github.com/dxtlt/dxt-lossless-transform-go/estimator"
	"github.com/dxtlt/dxt-lossless-transform-go/internal/scratch"
)

// EstimateSettings configures TransformAuto: which estimator scores
// candidates, and whether the search covers all decorrelation variants or
// only the fast-mode subset.
type EstimateSettings struct {
	Estimator                estimator.Estimator
	UseAllDecorrelationModes bool
}

// TransformAuto brute-forces every legal BC1 settings combination (per
// EstimateSettings.UseAllDecorrelationModes), scores each via the
// configured estimator, and leaves dst holding the winning transform. It
// returns the winning settings.
//
// Candidates are scanned in AllSettings order; a candidate whose estimated
// size is less than or equal to the current best replaces it, so late ties
// favor the later (by construction, more frequently winning) candidate.
func TransformAuto(settings EstimateSettings, src, dst []byte) (Settings, error) {
	n, err := blockCount(len(src))
	if err != nil {
		return Settings{}, err
	}
	if len(dst) < len(src) {
		return Settings{}, dxterrors.NewOutputBufferTooSmall(len(src), len(dst))
	}
	length := n * BlockSize

	scratchBufLen, err := settings.Estimator.MaxCompressedSize(length)
	if err != nil {
		return Settings{}, dxterrors.NewSizeEstimationError(err)
	}
	estimatorBuf := make([]byte, scratchBufLen)

	pp := scratch.NewPingPong(length)
	defer pp.Release()

	candidates := AllSettings(settings.UseAllDecorrelationModes)

	var best Settings
	var bestScore uint64
	haveBest := false

	for _, s := range candidates {
		candidate := pp.Candidate()
		if err := Transform(s, src[:length], candidate); err != nil {
			return Settings{}, err
		}

		score, err := settings.Estimator.EstimateCompressedSize(candidate, estimator.DataTypeUnknown, estimatorBuf)
		if err != nil {
			return Settings{}, dxterrors.NewSizeEstimationError(err)
		}

		if !haveBest || score <= bestScore {
			pp.Accept()
			best = s
			bestScore = score
			haveBest = true
		}
	}

	copy(dst[:length], pp.Best())
	return best, nil
}
