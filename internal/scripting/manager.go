package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
)

// globalScope is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when no category VM is found.
const globalScope = "__global__"

type vm struct {
	// mu serializes calls; an LState is single-threaded.
	mu     sync.Mutex
	L      *lua.LState
	cancel context.CancelFunc
	limit  int
	// roller backs engine.dice for the call in progress. Guarded by mu.
	roller *dice.Roller
}

// Manager owns one sandboxed LState per item category plus a shared global
// VM, and dispatches post-enchantment hooks to them.
//
// Manager is safe for concurrent CallHook and AfterEnchant after loading
// completes. Calls into the same VM are serialized. AfterEnchant hooks draw
// from the caller's Roller; CallHook draws from the Manager's own.
type Manager struct {
	mu     sync.RWMutex
	vms    map[string]*vm
	roller *dice.Roller
	logger *zap.Logger
}

// NewManager creates a Manager. roller backs engine.dice for direct CallHook
// calls.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no VMs loaded.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil || logger == nil {
		panic("scripting: NewManager precondition violated: roller and logger must be non-nil")
	}
	return &Manager{
		vms:    make(map[string]*vm),
		roller: roller,
		logger: logger,
	}
}

// LoadCategory creates a sandboxed VM for hooks specific to category,
// registers the engine.* modules, then executes every *.lua file in scriptDir
// in lexicographic order.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: the category VM is registered; returns error on Lua load failure.
func (m *Manager) LoadCategory(category inventory.Category, scriptDir string, instLimit int) error {
	return m.loadInto(string(category), scriptDir, instLimit)
}

// LoadGlobal creates the shared VM that every category falls back to.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: the global VM is registered; returns error on Lua load failure.
func (m *Manager) LoadGlobal(scriptDir string, instLimit int) error {
	return m.loadInto(globalScope, scriptDir, instLimit)
}

// LoadTree loads the *.lua files directly in dir into the global VM, then
// each subdirectory of dir into the VM of the category it is named after.
// It returns the categories that got their own VM.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns an error for a subdirectory that names no category.
func (m *Manager) LoadTree(dir string, instLimit int) ([]inventory.Category, error) {
	if err := m.LoadGlobal(dir, instLimit); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var loaded []inventory.Category
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		c, err := inventory.ParseCategory(e.Name())
		if err != nil {
			return nil, fmt.Errorf("scripting: script subdirectory %q: %w", e.Name(), err)
		}
		if err := m.LoadCategory(c, filepath.Join(dir, e.Name()), instLimit); err != nil {
			return nil, err
		}
		loaded = append(loaded, c)
	}
	return loaded, nil
}

func (m *Manager) loadInto(key, scriptDir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	v := &vm{L: L, cancel: cancel, limit: instLimit}
	m.registerModules(L, v)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.vms[key]; ok {
		old.close()
	}
	m.vms[key] = v
	m.mu.Unlock()
	return nil
}

func (v *vm) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
	}
	v.L.Close()
}

// Close releases every VM.
//
// Postcondition: later CallHook calls return LNil.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, v := range m.vms {
		v.close()
		delete(m.vms, key)
	}
}

func (m *Manager) lookup(scope string) *vm {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vms[scope]; ok {
		return v
	}
	return m.vms[globalScope]
}

// CallHook calls the named Lua global function in scope's VM, falling back to
// the global VM. Returns (LNil, nil) if the hook is not defined or no VM
// exists. Lua runtime errors, including an exhausted instruction budget, are
// logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error) {
	v := m.lookup(scope)
	if v == nil {
		m.logger.Info("scripting: no VM for scope",
			zap.String("scope", scope),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return m.call(v, m.roller, scope, hook, args...), nil
}

// call runs hook in v with r behind engine.dice.
//
// Precondition: v.mu is held.
func (m *Manager) call(v *vm, r *dice.Roller, scope, hook string, args ...lua.LValue) lua.LValue {
	L := v.L
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil
	}

	v.roller = r
	defer func() { v.roller = nil }()
	cancel := resetBudget(L, v.limit)
	defer cancel()
	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("scope", scope),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret
}

// AfterEnchant runs the hook named by the item's template, if any, drawing
// engine.dice from r. The hook receives a snapshot table of the item and may
// return a table of overrides (see applyOverrides).
//
// Precondition: r must be non-nil.
// Postcondition: returns an error only when the hook's result cannot be
// applied; the item is unchanged in that case.
func (m *Manager) AfterEnchant(r *dice.Roller, item *inventory.Item) error {
	if item.Base == nil || item.Base.Hook == "" {
		return nil
	}
	scope := string(item.Category)
	v := m.lookup(scope)
	if v == nil {
		return nil
	}
	v.mu.Lock()
	ret := m.call(v, r, scope, item.Base.Hook, itemTable(v.L, item))
	v.mu.Unlock()

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil
	}
	if err := applyOverrides(item, tbl); err != nil {
		return fmt.Errorf("scripting: hook %q on %q: %w", item.Base.Hook, item.BaseID, err)
	}
	m.logger.Debug("scripting: hook applied",
		zap.String("hook", item.Base.Hook),
		zap.String("item", item.BaseID),
	)
	return nil
}
