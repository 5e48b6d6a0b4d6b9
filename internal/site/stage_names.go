package site

// StageName is a strongly-typed identifier for a build stage. All canonical
// stages are declared as constants here for compile-time safety.
type StageName string

// Canonical stage names.
const (
	StagePrepareOutput   StageName = "prepare_output"
	StageRunHooks        StageName = "run_hooks"
	StageDiscoverContent StageName = "discover_content"
	StageRenderPages     StageName = "render_pages"
	StageWriteSiteConfig StageName = "write_site_config"
	StageCopyStatic      StageName = "copy_static"
	StagePostProcess     StageName = "post_process"
)

// Stage is the executing function of one build stage.
type Stage func(*Build) error

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}
