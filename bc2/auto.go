package bc2

import (
	"github.com/dxtlt/dxt-lossless-transform-go/dxterrors"
	"github.com/dxtlt/dxt-lossless-transform-go/estimator"
	"github.com/dxtlt/dxt-lossless-transform-go/internal/scratch"
)

// EstimateSettings configures TransformAuto; see bc1.EstimateSettings.
type EstimateSettings struct {
	Estimator                estimator.Estimator
	UseAllDecorrelationModes bool
}

// TransformAuto is the BC2 analogue of bc1.TransformAuto: see its doc
// comment for the search and tie-break semantics.
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

	var best Settings
	var bestScore uint64
	haveBest := false

	for _, s := range AllSettings(settings.UseAllDecorrelationModes) {
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
