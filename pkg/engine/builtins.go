package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/Boomstam/dronegen/pkg/arm"
	"github.com/Boomstam/dronegen/pkg/geom"
	"github.com/Boomstam/dronegen/pkg/shape"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms recipe Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: rotor-count -> rotor_count
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geom.Vec3.
type sexpVec3 struct {
	vec geom.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.2f %.2f %.2f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpHub wraps body parameters so they can be returned from `hub`
// and consumed by `defdrone`.
type sexpHub struct {
	params shape.HubParams
}

func (h *sexpHub) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(hub :shape %s)", h.params.BaseShape)
}
func (h *sexpHub) Type() *zygo.RegisteredType { return nil }

// sexpBlade wraps blade parameters.
type sexpBlade struct {
	params shape.BladeParams
}

func (b *sexpBlade) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(blade :shape %s :length %.2f)", b.params.Shape, b.params.Length)
}
func (b *sexpBlade) Type() *zygo.RegisteredType { return nil }

// sexpRotor wraps rotor parameters.
type sexpRotor struct {
	params shape.RotorParams
}

func (r *sexpRotor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(rotor :blades %d)", r.params.BladeCount)
}
func (r *sexpRotor) Type() *zygo.RegisteredType { return nil }

// sexpArm wraps arm tube options.
type sexpArm struct {
	opts arm.Options
}

func (a *sexpArm) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(arm :thickness %.2f)", a.opts.Thickness)
}
func (a *sexpArm) Type() *zygo.RegisteredType { return nil }

// sexpDroneRef names a drone already added to the recipe.
type sexpDroneRef struct {
	name string
}

func (d *sexpDroneRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(drone %q)", d.name)
}
func (d *sexpDroneRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat32 extracts a float32 from a Sexp (SexpInt or SexpFloat).
func toFloat32(s zygo.Sexp) (float32, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float32(v.Val), nil
	case *zygo.SexpFloat:
		return float32(v.Val), nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a SexpBool.
func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_cube) and plain strings ("cube").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toBaseShape converts a keyword or string to a shape.BaseShape.
func toBaseShape(s zygo.Sexp) (shape.BaseShape, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected body shape keyword (:sphere, :cube): %w", err)
	}
	switch name {
	case "sphere":
		return shape.Sphere, nil
	case "cube":
		return shape.Cube, nil
	}
	return 0, fmt.Errorf("invalid body shape %q, expected sphere or cube", name)
}

// toTaperDirection converts a keyword or string to a shape.TaperDirection.
func toTaperDirection(s zygo.Sexp) (shape.TaperDirection, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected taper direction keyword: %w", err)
	}
	switch name {
	case "bottom-to-top":
		return shape.BottomToTop, nil
	case "back-to-front":
		return shape.BackToFront, nil
	}
	return 0, fmt.Errorf("invalid taper direction %q, expected bottom-to-top or back-to-front", name)
}

// toBladeShape converts a keyword or string to a shape.BladeShape.
func toBladeShape(s zygo.Sexp) (shape.BladeShape, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected blade shape keyword: %w", err)
	}
	switch name {
	case "triangular":
		return shape.Triangular, nil
	case "rectangular":
		return shape.Rectangular, nil
	case "curved":
		return shape.Curved, nil
	}
	return 0, fmt.Errorf("invalid blade shape %q, expected triangular, rectangular or curved", name)
}

// toArmShape converts a keyword or string to an arm.Shape.
func toArmShape(s zygo.Sexp) (arm.Shape, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected arm shape keyword: %w", err)
	}
	switch name {
	case "cylindrical":
		return arm.Cylindrical, nil
	case "rectangular":
		return arm.Rectangular, nil
	}
	return 0, fmt.Errorf("invalid arm shape %q, expected cylindrical or rectangular", name)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all recipe DSL builtins into a zygomys
// environment. The builtins populate the provided Recipe during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, rec *Recipe) {

	// -----------------------------------------------------------------------
	// (vec3 1.2 0.8 1.2)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		x, err := toFloat32(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat32(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat32(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: geom.V3(x, y, z)}, nil
	})

	// -----------------------------------------------------------------------
	// (hub :shape :cube :scale (vec3 1.2 0.8 1.2) :taper 0.3
	//      :taper-direction :bottom-to-top)
	// -----------------------------------------------------------------------
	env.AddFunction("hub", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := shape.HubParams{Scale: geom.V3(1, 1, 1)}

		if v, ok := pa.kw["shape"]; ok {
			s, err := toBaseShape(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("hub: shape: %w", err)
			}
			p.BaseShape = s
		}
		if v, ok := pa.kw["scale"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("hub: scale: %w", err)
			}
			p.Scale = vec
		}
		if v, ok := pa.kw["taper"]; ok {
			f, err := toFloat32(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("hub: taper: %w", err)
			}
			p.Taper = f
		}
		if v, ok := pa.kw["taper-direction"]; ok {
			d, err := toTaperDirection(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("hub: taper-direction: %w", err)
			}
			p.TaperDirection = d
		}

		if err := p.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("hub: %w", err)
		}
		return &sexpHub{params: p}, nil
	})

	// -----------------------------------------------------------------------
	// (blade :shape :curved :length 0.8 :width 0.2 :thickness 0.04
	//        :curve 0.5 :petal 1.5 :twist 0.2)
	// -----------------------------------------------------------------------
	env.AddFunction("blade", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := shape.BladeParams{PetalShape: 1}

		if v, ok := pa.kw["shape"]; ok {
			s, err := toBladeShape(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("blade: shape: %w", err)
			}
			p.Shape = s
		}
		for kw, dst := range map[string]*float32{
			"length":    &p.Length,
			"width":     &p.Width,
			"thickness": &p.Thickness,
			"curve":     &p.CurveAmount,
			"petal":     &p.PetalShape,
			"twist":     &p.Twist,
		} {
			if v, ok := pa.kw[kw]; ok {
				f, err := toFloat32(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("blade: %s: %w", kw, err)
				}
				*dst = f
			}
		}

		if err := p.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("blade: %w", err)
		}
		return &sexpBlade{params: p}, nil
	})

	// -----------------------------------------------------------------------
	// (rotor :blades 3 :blade (blade ...) :hub-radius 0.12 :hub-height 0.15
	//        :ring true :ring-thickness 0.08)
	// -----------------------------------------------------------------------
	env.AddFunction("rotor", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := shape.RotorParams{}

		if v, ok := pa.kw["blades"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotor: blades: %w", err)
			}
			p.BladeCount = n
		}
		if v, ok := pa.kw["blade"]; ok {
			b, ok := v.(*sexpBlade)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("rotor: blade: expected blade expression, got %T", v)
			}
			p.Blade = b.params
		}
		if v, ok := pa.kw["hub-radius"]; ok {
			f, err := toFloat32(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotor: hub-radius: %w", err)
			}
			p.HubRadius = f
		}
		if v, ok := pa.kw["hub-height"]; ok {
			f, err := toFloat32(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotor: hub-height: %w", err)
			}
			p.HubHeight = f
		}
		if v, ok := pa.kw["ring"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotor: ring: %w", err)
			}
			p.IncludeRing = b
		}
		if v, ok := pa.kw["ring-thickness"]; ok {
			f, err := toFloat32(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotor: ring-thickness: %w", err)
			}
			p.RingThickness = f
		}

		if err := p.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("rotor: %w", err)
		}
		return &sexpRotor{params: p}, nil
	})

	// -----------------------------------------------------------------------
	// (arm :thickness 0.08 :shape :cylindrical :segments 8
	//      :auto-scale true :max-distance 3)
	// -----------------------------------------------------------------------
	env.AddFunction("arm", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		opts := arm.Options{Thickness: 0.08}

		if v, ok := pa.kw["thickness"]; ok {
			f, err := toFloat32(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arm: thickness: %w", err)
			}
			opts.Thickness = f
		}
		if v, ok := pa.kw["shape"]; ok {
			s, err := toArmShape(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arm: shape: %w", err)
			}
			opts.Shape = s
		}
		if v, ok := pa.kw["segments"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arm: segments: %w", err)
			}
			opts.Segments = n
		}
		if v, ok := pa.kw["auto-scale"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arm: auto-scale: %w", err)
			}
			opts.AutoScale = b
		}
		if v, ok := pa.kw["max-distance"]; ok {
			f, err := toFloat32(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arm: max-distance: %w", err)
			}
			opts.MaxDistance = f
		}

		return &sexpArm{opts: opts}, nil
	})

	// -----------------------------------------------------------------------
	// (defdrone "scout" :seed 42
	//   :body (hub ...) :rotor (rotor ...) :rotor-count 4 :arm (arm ...))
	//
	// Every keyword after the name is optional: a def with only a seed is
	// fully sampled at generation time.
	// -----------------------------------------------------------------------
	env.AddFunction("defdrone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("defdrone requires a name argument")
		}
		droneName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defdrone: name: %w", err)
		}
		if rec.Lookup(droneName) != nil {
			return zygo.SexpNull, fmt.Errorf("defdrone: drone %q already defined", droneName)
		}

		def := DroneDef{Name: droneName}
		if v, ok := pa.kw["seed"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("defdrone: seed: %w", err)
			}
			def.Seed = int64(n)
		}
		if v, ok := pa.kw["body"]; ok {
			h, ok := v.(*sexpHub)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("defdrone: body: expected hub expression, got %T", v)
			}
			def.Hub = &h.params
		}
		if v, ok := pa.kw["rotor"]; ok {
			r, ok := v.(*sexpRotor)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("defdrone: rotor: expected rotor expression, got %T", v)
			}
			def.Rotor = &r.params
		}
		if v, ok := pa.kw["rotor-count"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("defdrone: rotor-count: %w", err)
			}
			if n != 4 && n != 6 && n != 8 {
				return zygo.SexpNull, fmt.Errorf("defdrone: rotor-count %d not in {4,6,8}", n)
			}
			def.RotorCount = n
		}
		if v, ok := pa.kw["arm"]; ok {
			a, ok := v.(*sexpArm)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("defdrone: arm: expected arm expression, got %T", v)
			}
			def.Arm = &a.opts
		}

		rec.Drones = append(rec.Drones, def)
		return &sexpDroneRef{name: droneName}, nil
	})
}
