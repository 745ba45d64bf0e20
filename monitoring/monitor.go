package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pdqlab/pdqcore/comm"
	"github.com/pdqlab/pdqcore/control"
	"github.com/pdqlab/pdqcore/mem"
	"github.com/pdqlab/pdqcore/sim"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// DefaultRunCycles is the number of cycles /api/run evaluates when the
// request does not say.
const DefaultRunCycles = 1000

// Monitor can turn a simulation into a server and allows external monitoring
// and controlling of the simulation.
type Monitor struct {
	engine     sim.Engine
	components []sim.Component
	core       *comm.Comm
	portNumber int
	listener   net.Listener

	pauseLock sync.Mutex
	paused    bool

	driveLock sync.Mutex

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine that is used in the simulation.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
}

// RegisterComponent register a component to be monitored.
func (m *Monitor) RegisterComponent(c sim.Component) {
	for _, known := range m.components {
		if known.Name() == c.Name() {
			return
		}
	}

	m.components = append(m.components, c)
}

// RegisterComm makes the registers and the memories of a communication core
// visible. Its components are registered too.
func (m *Monitor) RegisterComm(c *comm.Comm) {
	m.core = c

	for _, comp := range c.Components() {
		m.RegisterComponent(comp)
	}
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        sim.GetIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the handler that serves the monitoring API.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/run", m.run)
	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/registers", m.listRegisters)
	r.HandleFunc("/api/memory/{channel:[0-9]+}", m.listMemory)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

// StartServer starts the monitor as a web server with a custom port if wanted.
func (m *Monitor) StartServer() {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.listener = listener

	fmt.Fprintf(os.Stderr,
		"Monitoring simulation with %s\n", m.URL())

	r := m.Router()
	go func() {
		err := http.Serve(listener, r)
		if err != nil && !errors.Is(err, net.ErrClosed) {
			log.Panic(err)
		}
	}()
}

// URL returns the address of the running server, or an empty string if the
// server is not started.
func (m *Monitor) URL() string {
	if m.listener == nil {
		return ""
	}

	return fmt.Sprintf("http://localhost:%d",
		m.listener.Addr().(*net.TCPAddr).Port)
}

// StopServer closes the listener of the server.
func (m *Monitor) StopServer() {
	if m.listener == nil {
		return
	}

	err := m.listener.Close()
	dieOnErr(err)

	m.listener = nil
}

// Paused tells if the engine is paused through the monitor.
func (m *Monitor) Paused() bool {
	m.pauseLock.Lock()
	defer m.pauseLock.Unlock()

	return m.paused
}

func (m *Monitor) pause() {
	m.pauseLock.Lock()
	defer m.pauseLock.Unlock()

	if m.paused {
		return
	}

	m.engine.Pause()
	m.paused = true
}

func (m *Monitor) resume() {
	m.pauseLock.Lock()
	defer m.pauseLock.Unlock()

	if !m.paused {
		return
	}

	m.engine.Continue()
	m.paused = false
}

// Drive runs f as the only driver of the engine. Requests to /api/run are
// refused until f returns, and f waits for a run started through the API.
func (m *Monitor) Drive(f func() error) error {
	m.driveLock.Lock()
	defer m.driveLock.Unlock()

	return f()
}

// betweenCycles runs f while no cycle is being evaluated.
func (m *Monitor) betweenCycles(f func()) {
	m.pauseLock.Lock()
	defer m.pauseLock.Unlock()

	if !m.paused {
		m.engine.Pause()
		defer m.engine.Continue()
	}

	f()
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.resume()
	_, err := w.Write(nil)
	dieOnErr(err)
}

type nowRsp struct {
	Cycle  uint64  `json:"cycle"`
	Now    float64 `json:"now"`
	Paused bool    `json:"paused"`
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	rsp := nowRsp{
		Cycle:  uint64(m.engine.CurrentCycle()),
		Now:    float64(m.engine.CurrentTime()),
		Paused: m.Paused(),
	}

	writeJSON(w, rsp)
}

type runRsp struct {
	Cycles uint64 `json:"cycles"`
}

func (m *Monitor) run(w http.ResponseWriter, r *http.Request) {
	cycles := uint64(DefaultRunCycles)

	if s := r.URL.Query().Get("cycles"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil || n == 0 {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Error: invalid cycle count %q", s)
			return
		}

		cycles = n
	}

	if !m.driveLock.TryLock() {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, "Error: the engine is already running")
		return
	}

	go func() {
		defer m.driveLock.Unlock()

		err := m.engine.Run(cycles)
		if err != nil {
			log.Panic(err)
		}
	}()

	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, runRsp{Cycles: cycles})
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(m.components))
	for _, c := range m.components {
		names = append(names, c.Name())
	}

	writeJSON(w, names)
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	component := m.findComponentOr404(w, name)
	if component == nil {
		return
	}

	m.betweenCycles(func() {
		serializer := goseth.NewSerializer()
		serializer.SetRoot(component)
		serializer.SetMaxDepth(1)
		err := serializer.Serialize(w)

		dieOnErr(err)
	})
}

type fieldReq struct {
	CompName  string `json:"comp_name,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	component := m.findComponentOr404(w, req.CompName)
	if component == nil {
		return
	}

	fields := strings.Split(req.FieldName, ".")

	m.betweenCycles(func() {
		serializer := goseth.NewSerializer()
		serializer.SetRoot(component)
		serializer.SetMaxDepth(1)

		err = serializer.SetEntryPoint(fields)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Error: %s", err)
			return
		}

		err = serializer.Serialize(w)
		dieOnErr(err)
	})
}

type registersRsp struct {
	Registers control.Registers `json:"registers"`
	Reset     bool              `json:"reset"`
	Busy      bool              `json:"busy"`
	Idle      bool              `json:"idle"`
	ClockFreq float64           `json:"clock_freq"`
}

func (m *Monitor) listRegisters(w http.ResponseWriter, _ *http.Request) {
	if m.core == nil {
		http.Error(w, "No core registered", http.StatusNotFound)
		return
	}

	var rsp registersRsp

	m.betweenCycles(func() {
		rsp = registersRsp{
			Registers: m.core.Registers(),
			Reset:     m.core.Reset(),
			Busy:      m.core.Busy(),
			Idle:      m.core.Idle(),
			ClockFreq: float64(m.core.ClockFreq()),
		}
	})

	writeJSON(w, rsp)
}

type memoryRsp struct {
	Channel int         `json:"channel"`
	Depth   int         `json:"depth"`
	Written []mem.Range `json:"written"`
	Address uint16      `json:"address"`
	Words   []uint16    `json:"words,omitempty"`
}

func (m *Monitor) listMemory(w http.ResponseWriter, r *http.Request) {
	if m.core == nil {
		http.Error(w, "No core registered", http.StatusNotFound)
		return
	}

	channel, err := strconv.Atoi(mux.Vars(r)["channel"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	storage := m.core.Memory(channel)
	if storage == nil {
		http.Error(w, "Memory not found", http.StatusNotFound)
		return
	}

	addr, n, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rsp := memoryRsp{
		Channel: channel,
		Depth:   storage.Depth(),
		Address: addr,
	}

	m.betweenCycles(func() {
		rsp.Written = storage.Written()
		if n > 0 {
			rsp.Words = storage.ReadRange(addr, n)
		}
	})

	writeJSON(w, rsp)
}

func parseWindow(r *http.Request) (addr uint16, n int, err error) {
	if s := r.URL.Query().Get("addr"); s != "" {
		a, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid address %q: %w", s, err)
		}

		addr = uint16(a)
	}

	if s := r.URL.Query().Get("n"); s != "" {
		n, err = strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, 0, fmt.Errorf("invalid word count %q", s)
		}
	}

	return addr, n, nil
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) sim.Component {
	var component sim.Component
	for _, c := range m.components {
		if c.Name() == name {
			component = c
		}
	}

	if component == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Component not found"))
		dieOnErr(err)
	}

	return component
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	bars := make([]ProgressBarStatus, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.Status())
	}

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	writeJSON(w, rsp)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, r *http.Request) {
	duration := time.Second
	if s := r.URL.Query().Get("duration"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			http.Error(w, fmt.Sprintf("invalid duration %q", s),
				http.StatusBadRequest)
			return
		}

		duration = d
	}

	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(duration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
