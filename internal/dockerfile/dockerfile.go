// Package dockerfile turns a recipe into a deterministic Dockerfile.
// Generation is a pure function: same recipe and base ref, same lines.
package dockerfile

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kvant-lab/slimpack/internal/baseimage"
	"github.com/kvant-lab/slimpack/internal/recipe"
	"github.com/kvant-lab/slimpack/internal/utils"
	"github.com/kvant-lab/slimpack/internal/version"
)

type Dockerfile []string

func (df Dockerfile) String() string {
	out := ""
	for _, line := range df {
		out += line + "\n"
	}
	return out
}

const sectionRule = "# ───────────────────────────────────────────"

// Generate emits the linear build sequence: pinned base, env flags, workdir,
// manifest install, verbatim file copies in recipe order, exec-form CMD.
// No branching, no stages.
func Generate(r *recipe.Recipe, base baseimage.Ref) Dockerfile {
	lines := Dockerfile{}

	lines = append(lines, sectionRule)
	lines = append(lines, "# BASE RUNTIME (VERSION-PINNED)")
	lines = append(lines, fmt.Sprintf("FROM %s", base.String()))

	if len(r.Env) > 0 {
		lines = append(lines, "", sectionRule)
		lines = append(lines, "# RUNTIME ENVIRONMENT FLAGS")
		for _, k := range utils.SortedKeys(r.Env) {
			lines = append(lines, fmt.Sprintf("ENV %s=%s", k, r.Env[k]))
		}
	}

	lines = append(lines, "", sectionRule)
	lines = append(lines, "# WORKDIR")
	lines = append(lines, fmt.Sprintf("WORKDIR %s", r.Workdir))

	lines = append(lines, "", sectionRule)
	lines = append(lines, "# DEPENDENCIES (fail-fast, no retry)")
	lines = append(lines, fmt.Sprintf("COPY %s .", r.Manifest))
	lines = append(lines, "RUN "+jsonExec([]string{"pip", "install", "--no-cache-dir", "-r", r.Manifest}))

	lines = append(lines, "", sectionRule)
	lines = append(lines, "# APPLICATION FILES (verbatim, fixed order)")
	for _, f := range r.Files {
		lines = append(lines, fmt.Sprintf("COPY %s .", f))
	}

	lines = append(lines, "", sectionRule)
	lines = append(lines, "# DEFAULT ENTRY COMMAND (exec form)")
	lines = append(lines, "CMD "+jsonExec([]string{"python", r.Entry}))

	lines = append(lines, "", sectionRule)
	lines = append(lines, "# AUDIT LABELS")
	lines = append(lines, fmt.Sprintf("LABEL slimpack.entry=%q", r.Entry))
	lines = append(lines, fmt.Sprintf("LABEL %s=%s", version.ImageSchemaVersionLabel, strconv.Itoa(version.ImageSchemaVersion)))
	lines = append(lines, "LABEL slimpack=true")

	return lines
}

func jsonExec(argv []string) string {
	b, _ := json.Marshal(argv)
	return string(b)
}
