package runner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// importLoadFailureExit is the loader's exit status when it cannot build a
// module loader for the file, as opposed to the file raising on execution.
const importLoadFailureExit = 3

// importProgram loads a snippet as a module under a caller-supplied unique
// name and executes its top-level code, mirroring what an in-process
// import would do but inside a fresh interpreter so a misbehaving snippet
// cannot take the verifier down with it. argv: snippet path, module name.
const importProgram = `import importlib.util
import sys
import traceback

path, name = sys.argv[1], sys.argv[2]
spec = importlib.util.spec_from_file_location(name, path)
if spec is None or spec.loader is None:
    sys.stderr.write("could not build a loader for " + path + "\n")
    sys.exit(3)
module = importlib.util.module_from_spec(spec)
try:
    spec.loader.exec_module(module)
except Exception:
    traceback.print_exc()
    sys.exit(1)
`

// defaultModuleID synthesizes a module name unique per invocation so
// repeated imports of equal stems from different directories never
// collide inside the loader process.
func defaultModuleID(stem string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("snippet_%s_%s", sanitizeIdentifier(stem), suffix)
}

// sanitizeIdentifier rewrites stem into a valid module identifier.
func sanitizeIdentifier(stem string) string {
	var sb strings.Builder
	for i, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteRune('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}
