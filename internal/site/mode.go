package site

import "fmt"

// Mode selects build flavour. All modes run the same stages; prod minifies
// the stylesheet.
type Mode string

const (
	ModeDefault Mode = "default"
	ModeDev     Mode = "dev"
	ModeProd    Mode = "prod"
)

// ParseMode maps the CLI argument to a Mode. An empty string is ModeDefault.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeDefault:
		return ModeDefault, nil
	case ModeDev:
		return ModeDev, nil
	case ModeProd:
		return ModeProd, nil
	}
	return "", fmt.Errorf("unknown build mode %q (want dev or prod)", s)
}

// Stage names one step of the build.
type Stage string

const (
	StageInit           Stage = "INIT"
	StageLoadProfile    Stage = "LOAD_PROFILE"
	StageGenerateCharts Stage = "GENERATE_CHARTS"
	StageRenderTemplate Stage = "RENDER_TEMPLATE"
	StageRewriteSubpath Stage = "REWRITE_SUBPATH"
	StageWriteSubpath   Stage = "WRITE_SUBPATH_ARTIFACT"
	StageRewriteRoot    Stage = "REWRITE_ROOT"
	StageWriteRoot      Stage = "WRITE_ROOT_ARTIFACT"
	StageCopyAssets     Stage = "COPY_STATIC_ASSETS"
	StageVerify         Stage = "VERIFY_REFERENCES"
	StagePromote        Stage = "PROMOTE"
	StageDone           Stage = "DONE"
)

// Stages lists the build stages in execution order.
var Stages = []Stage{
	StageInit,
	StageLoadProfile,
	StageGenerateCharts,
	StageRenderTemplate,
	StageRewriteSubpath,
	StageWriteSubpath,
	StageRewriteRoot,
	StageWriteRoot,
	StageCopyAssets,
	StageVerify,
	StagePromote,
	StageDone,
}
