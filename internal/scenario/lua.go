package scenario

import (
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/pkg/errors"

	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

const scenarioTypeName = "rink.scenario"

// LoadFile runs the Lua script at path and returns the Scenario it builds.
// A scenario without a name is named after the file.
func LoadFile(path string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, errors.Wrap(err, "load lua")
	}
	sc, err := runChunk(state)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", path)
	}
	if strings.TrimSpace(sc.Name) == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// LoadString runs src and returns the Scenario it builds.
func LoadString(src string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadString(state, src); err != nil {
		return nil, errors.Wrap(err, "load lua")
	}
	return runChunk(state)
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerScenarioType(state)
	registerScenarioConstructor(state)
	return state
}

// runChunk calls the loaded chunk and takes the Scenario it returns.
func runChunk(state *lua.State) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, errors.Wrap(err, "run lua")
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, errors.New("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	sc, ok := ud.(*Scenario)
	if !ok || sc == nil {
		return nil, errors.New("scenario script returned invalid Scenario")
	}
	return sc, nil
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	state.PushUserData(&Scenario{Name: name})
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

// Every method appends one step and returns the scenario so calls chain.
var scenarioMethods = []lua.RegistryFunction{
	{Name: "ticks", Function: scenarioTicks},
	{Name: "pointer", Function: pointStep(KindPointer)},
	{Name: "strike", Function: pointStep(KindStrike)},
	{Name: "place_puck", Function: pointStep(KindPlacePuck)},
	{Name: "randomize", Function: bareStep(KindRandomize)},
	{Name: "reset", Function: bareStep(KindReset)},
	{Name: "manual", Function: scenarioManual},
	{Name: "expect_score", Function: scenarioExpectScore},
}

func scenarioTicks(state *lua.State) int {
	sc := checkScenario(state)
	n := lua.CheckInteger(state, 2)
	if n <= 0 {
		lua.ArgumentError(state, 2, "tick count must be positive")
	}
	return appendStep(state, sc, Step{Kind: KindTicks, N: n})
}

func pointStep(kind string) lua.Function {
	return func(state *lua.State) int {
		sc := checkScenario(state)
		x := lua.CheckNumber(state, 2)
		y := lua.CheckNumber(state, 3)
		return appendStep(state, sc, Step{Kind: kind, At: vmath.V(x, y)})
	}
}

func bareStep(kind string) lua.Function {
	return func(state *lua.State) int {
		return appendStep(state, checkScenario(state), Step{Kind: kind})
	}
}

func scenarioManual(state *lua.State) int {
	sc := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeBoolean)
	return appendStep(state, sc, Step{Kind: KindManual, On: state.ToBoolean(2)})
}

func scenarioExpectScore(state *lua.State) int {
	sc := checkScenario(state)
	left := lua.CheckInteger(state, 2)
	right := lua.CheckInteger(state, 3)
	if left < 0 || right < 0 {
		lua.Errorf(state, "expect_score: scores cannot be negative (%d, %d)", left, right)
	}
	return appendStep(state, sc, Step{Kind: KindExpectScore, Left: left, Right: right})
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if sc, ok := ud.(*Scenario); ok && sc != nil {
		return sc
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

// appendStep records step and leaves the scenario on the stack for chaining.
func appendStep(state *lua.State, sc *Scenario, step Step) int {
	sc.Steps = append(sc.Steps, step)
	state.PushValue(1)
	return 1
}
