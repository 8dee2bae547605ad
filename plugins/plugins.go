package plugins

import (
	"github.com/Yamashou/dartgenc/codegen"
	"github.com/Yamashou/dartgenc/config"
	"github.com/Yamashou/dartgenc/dartsrc"
	"github.com/Yamashou/dartgenc/errors"
	"github.com/Yamashou/dartgenc/logger"
	"github.com/Yamashou/dartgenc/plugins/beangen"
)

// Mode selects where field shapes come from.
type Mode int

const (
	// JSONMode infers fields and nested classes from a sample document.
	JSONMode Mode = iota
	// FieldsMode reuses the fields already declared in the class.
	FieldsMode
)

func (m Mode) String() string {
	if m == FieldsMode {
		return "fields"
	}
	return "json"
}

// NoOffset marks a request without a cursor.
const NoOffset = -1

// Request is one generation run against one Dart file.
type Request struct {
	Mode   Mode
	Source []byte
	// Sample is the JSON document, JSONMode only.
	Sample []byte
	// ClassNames are the target classes. JSONMode uses the first one.
	ClassNames []string
	// Offset is a byte offset inside the target class, or NoOffset.
	Offset int
}

type Result struct {
	Source  []byte                  `json:"-"`
	Groups  []beangen.FragmentGroup `json:"groups"`
	Skipped []string                `json:"skipped,omitempty"`
}

// GenerateCode は snapshot → plan → apply の順で1回の生成を行う。
// 既存メンバーのスナップショットは計画の前に一度だけ取る。
func GenerateCode(cfg *config.Config, req Request) (*Result, error) {
	opts := cfg.Generator.Normalize()

	file, err := dartsrc.Scan(req.Source)
	if err != nil {
		return nil, errors.Wrap(err, "scan dart source")
	}
	snap := file.Snapshot()

	beanGen := beangen.New(opts)

	var groups []beangen.FragmentGroup
	var skipped []string

	switch req.Mode {
	case JSONMode:
		root, err := resolveRoot(file, req)
		if err != nil {
			return nil, err
		}
		spec, err := codegen.NewSchemaInferrer(opts.Suffix, opts.NullSafe).InferJSON(root.Name, req.Sample)
		if err != nil {
			return nil, errors.Wrap(err, "infer json sample")
		}
		groups = beanGen.PlanJSON(spec, snap)
	case FieldsMode:
		var targets []*codegen.ClassSnapshot
		targets, skipped, err = resolveTargets(file, snap, req)
		if err != nil {
			return nil, err
		}
		groups = beanGen.PlanFields(targets)
	default:
		return nil, errors.Newf("unknown mode %d", int(req.Mode))
	}

	out, notFound, err := dartsrc.Apply(req.Source, groups)
	if err != nil {
		return nil, errors.Wrapf(err, "%s failed", beanGen.Name())
	}
	skipped = append(skipped, notFound...)

	logger.Logger.Infow("generated",
		logger.FieldMode, req.Mode.String(),
		logger.FieldCount, len(groups),
		logger.FieldSkipped, skipped,
	)

	return &Result{Source: out, Groups: groups, Skipped: skipped}, nil
}

// resolveRoot picks the JSON target: the named class, else the class at the
// cursor, else the first class of the file.
func resolveRoot(file *dartsrc.File, req Request) (*dartsrc.Class, error) {
	var c *dartsrc.Class
	switch {
	case len(req.ClassNames) > 0:
		if c = file.Class(req.ClassNames[0]); c == nil {
			return nil, errors.Wrapf(errors.ErrClassNotFound, "class %s", req.ClassNames[0])
		}
	case req.Offset >= 0:
		if c = file.ClassAt(req.Offset); c == nil {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrClassNotFound, "no class at offset %d", req.Offset),
				"place the cursor inside the class body",
			)
		}
	default:
		if len(file.Classes) == 0 {
			return nil, errors.WithHint(
				errors.Wrap(errors.ErrClassNotFound, "file declares no class"),
				"declare an empty class to generate into",
			)
		}
		c = file.Classes[0]
	}
	return c, nil
}

// resolveTargets picks the classes for FieldsMode. Named classes that do not
// exist are skipped; a cursor outside every class is an error.
func resolveTargets(file *dartsrc.File, snap codegen.Snapshot, req Request) ([]*codegen.ClassSnapshot, []string, error) {
	var targets []*codegen.ClassSnapshot
	var skipped []string

	switch {
	case len(req.ClassNames) > 0:
		for _, name := range req.ClassNames {
			s := snap.Class(name)
			if s == nil {
				logger.Logger.Warnw("class not found, skipped", logger.FieldClass, name)
				skipped = append(skipped, name)
				continue
			}
			targets = append(targets, s)
		}
	case req.Offset >= 0:
		c := file.ClassAt(req.Offset)
		if c == nil {
			return nil, nil, errors.Wrapf(errors.ErrClassNotFound, "no class at offset %d", req.Offset)
		}
		targets = append(targets, snap.Class(c.Name))
	default:
		for _, c := range file.Classes {
			if s := snap.Class(c.Name); s != nil && !containsSnapshot(targets, s) {
				targets = append(targets, s)
			}
		}
	}

	return targets, skipped, nil
}

func containsSnapshot(list []*codegen.ClassSnapshot, s *codegen.ClassSnapshot) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
