package builder

type Options struct {
	System      string
	Output      string
	Package     string
	Target      string
	SVD         string
	BuildTags   []string
	Environment Env
	DryRun      bool
}
