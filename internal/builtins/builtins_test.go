package builtins

import (
	"testing"

	"github.com/cwbudde/glslx-go/internal/types"
)

func TestInstallDefinesOneSinOverloadPerGenFloatType(t *testing.T) {
	scope := types.NewScope(types.GlobalScope, nil)
	data := types.NewCompilerData(nil)
	Install(scope, data)

	sym, ok := scope.FindLocal("sin")
	if !ok {
		t.Fatal("sin not installed")
	}
	if !sym.IsNative() {
		t.Error("sin is not flagged NATIVE")
	}
	// One overload per genFloat entry beyond the first, chained onto sym.
	if got, want := len(sym.Overloads), len(genFloat)-1; got != want {
		t.Errorf("len(sin.Overloads) = %d, want %d", got, want)
	}
}

func TestInstallPredefinedVariablesCarryCorrectDirection(t *testing.T) {
	scope := types.NewScope(types.GlobalScope, nil)
	data := types.NewCompilerData(nil)
	Install(scope, data)

	pos, ok := scope.FindLocal("gl_Position")
	if !ok {
		t.Fatal("gl_Position not installed")
	}
	if !pos.Flags.Has(types.Native) || !pos.Flags.Has(types.Out) {
		t.Errorf("gl_Position.Flags = %v, want NATIVE|OUT", pos.Flags)
	}
	if pos.Type != types.Vec4Type {
		t.Errorf("gl_Position.Type = %v, want vec4", pos.Type)
	}

	coord, ok := scope.FindLocal("gl_FragCoord")
	if !ok {
		t.Fatal("gl_FragCoord not installed")
	}
	if !coord.Flags.Has(types.In) {
		t.Errorf("gl_FragCoord.Flags = %v, want IN set", coord.Flags)
	}
}

func TestInstallGivesEveryFunctionSymbolDistinctIDs(t *testing.T) {
	scope := types.NewScope(types.GlobalScope, nil)
	data := types.NewCompilerData(nil)
	Install(scope, data)

	sin, _ := scope.FindLocal("sin")
	seen := map[int64]bool{sin.ID: true}
	for _, overload := range sin.Overloads {
		if seen[overload.ID] {
			t.Errorf("duplicate symbol ID %d among sin's overloads", overload.ID)
		}
		seen[overload.ID] = true
	}
}

func TestInstallClampHasBothVectorAndFloatBroadcastForms(t *testing.T) {
	scope := types.NewScope(types.GlobalScope, nil)
	data := types.NewCompilerData(nil)
	Install(scope, data)

	clamp, ok := scope.FindLocal("clamp")
	if !ok {
		t.Fatal("clamp not installed")
	}
	candidates := append([]*types.Symbol{clamp}, clamp.Overloads...)

	var sawVec3Broadcast, sawVec3Full bool
	for _, cand := range candidates {
		ft, ok := cand.Type.(*types.FunctionType)
		if !ok || len(ft.Params) != 3 || ft.ReturnType != types.Vec3Type {
			continue
		}
		if ft.Params[1].Type == types.FloatType && ft.Params[2].Type == types.FloatType {
			sawVec3Broadcast = true
		}
		if ft.Params[1].Type == types.Vec3Type && ft.Params[2].Type == types.Vec3Type {
			sawVec3Full = true
		}
	}
	if !sawVec3Broadcast {
		t.Error("clamp(vec3, float, float) overload not found")
	}
	if !sawVec3Full {
		t.Error("clamp(vec3, vec3, vec3) overload not found")
	}
}
