package remote

import (
	"fmt"
	"slices"
	"sync"

	"github.com/roadrover/ivi-audio/internal/models"
)

type paramState struct {
	available bool
	min, max  int
	def       int
	value     int
}

type gainState struct {
	available bool
	min, max  float64
	def       float64
	value     float64
}

type pathState struct {
	channels        map[models.Channel]*gainState
	deviceAvailable bool
	gainMin         float64
	gainMax         float64
	gain            map[int]float64 // volume step -> gain, overrides of the default curve
	volMin, volMax  int
}

// defaultGain is the linear default curve from gainMin at volMin to gainMax at volMax.
func (p *pathState) defaultGain(vol int) float64 {
	if p.volMax <= p.volMin {
		return p.gainMax
	}
	if vol < p.volMin {
		vol = p.volMin
	}
	if vol > p.volMax {
		vol = p.volMax
	}
	frac := float64(vol-p.volMin) / float64(p.volMax-p.volMin)
	return p.gainMin + frac*(p.gainMax-p.gainMin)
}

// Mock is a thread-safe in-memory audio service for tests and for running the
// daemon without a head unit. Every registered sink is a client: value changes
// are broadcast to all of them, the issuing one included, on the caller's
// goroutine.
type Mock struct {
	mu            sync.Mutex
	params        map[models.ParamID]*paramState
	paths         map[models.Path]*pathState
	eq            map[int][]int
	effects       map[int]string
	activeVolume  models.ParamID
	masterChannel models.Channel
	barVisible    bool
	shortMutes    []int
	mediaPercent  int
	chipParams    map[[2]int][4]float64

	sinks   []Sink
	calls   map[string]int
	fail    bool
	severed bool
	done    chan struct{}
}

// NewMock creates a mock service with a small default catalog: master and
// secondary volume (0-40, at 12 and 10), mutes, source volumes and tone
// controls, four primary and two secondary pre-volume channels, six EQ modes
// and three expert effects.
func NewMock() *Mock {
	m := &Mock{
		params:        make(map[models.ParamID]*paramState),
		paths:         make(map[models.Path]*pathState),
		eq:            make(map[int][]int),
		effects:       map[int]string{1: "", 2: "", 3: ""},
		activeVolume:  models.ParamVolumeMaster,
		masterChannel: models.ChannelPC,
		mediaPercent:  100,
		chipParams:    make(map[[2]int][4]float64),
		calls:         make(map[string]int),
		done:          make(chan struct{}),
	}

	m.addParam(models.ParamVolumeMaster, 0, 40, 12)
	m.addParam(models.ParamVolumeSecondary, 0, 40, 10)
	m.addParam(models.ParamMute, 0, 1, 0)
	m.addParam(models.ParamMuteSecondary, 0, 1, 0)
	for _, id := range []models.ParamID{
		models.ParamVolumeMedia, models.ParamVolumeNavi, models.ParamVolumePhone,
		models.ParamVolumeBluetooth, models.ParamVolumeRadio,
	} {
		m.addParam(id, 0, 40, 15)
	}
	for _, id := range []models.ParamID{
		models.ParamBalance, models.ParamFade, models.ParamBass, models.ParamMiddle, models.ParamTreble,
	} {
		m.addParam(id, -7, 7, 0)
	}
	m.addParam(models.ParamLoudness, 0, 1, 0)
	m.addParam(models.ParamEqMode, 0, 5, 0)

	m.paths[models.PathPrimary] = newPathState(
		[]models.Channel{models.ChannelPC, models.ChannelAUX, models.ChannelRadio, models.ChannelDVD}, 40)
	m.paths[models.PathSecondary] = newPathState(
		[]models.Channel{models.ChannelPC, models.ChannelAUX}, 40)

	for mode := 0; mode <= 5; mode++ {
		gains := make([]int, 10)
		for band := range gains {
			gains[band] = (mode * (band - 5)) % 8
		}
		m.eq[mode] = gains
	}
	return m
}

func newPathState(channels []models.Channel, volMax int) *pathState {
	p := &pathState{
		channels:        make(map[models.Channel]*gainState),
		deviceAvailable: true,
		gainMin:         -60,
		gainMax:         0,
		gain:            make(map[int]float64),
		volMin:          0,
		volMax:          volMax,
	}
	for _, ch := range channels {
		p.channels[ch] = &gainState{available: true, min: -12, max: 12}
	}
	return p
}

func (m *Mock) addParam(id models.ParamID, min, max, def int) {
	m.params[id] = &paramState{available: true, min: min, max: max, def: def, value: def}
}

// --- test hooks ---

// SetFail makes every call fail with ErrUnavailable until cleared.
func (m *Mock) SetFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

// SetParamAvailable adds or removes a parameter from the catalog. New
// parameters get the range 0-100.
func (m *Mock) SetParamAvailable(id models.ParamID, available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.params[id]
	if !ok {
		m.addParam(id, 0, 100, 0)
		p = m.params[id]
	}
	p.available = available
}

// SetChannelAvailable adds or removes a pre-volume channel on a path.
func (m *Mock) SetChannelAvailable(path models.Path, ch models.Channel, available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.paths[path].channels[ch]
	if !ok {
		g = &gainState{min: -12, max: 12}
		m.paths[path].channels[ch] = g
	}
	g.available = available
}

// Calls returns how often method was invoked, failed calls included.
func (m *Mock) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// TotalCalls returns the number of calls across all methods.
func (m *Mock) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

// ResetCalls zeroes the call counters.
func (m *Mock) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = make(map[string]int)
}

// Sinks returns the number of registered sinks.
func (m *Mock) Sinks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sinks)
}

// ShortMutes returns the durations passed to RequestInternalShortMute.
func (m *Mock) ShortMutes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.shortMutes...)
}

// MediaPercent returns the last analog media volume percentage.
func (m *Mock) MediaPercent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mediaPercent
}

// ChipParam returns the coefficients last written for a chip parameter.
func (m *Mock) ChipParam(chip, param int) ([4]float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.chipParams[[2]int{chip, param}]
	return v, ok
}

// Sever simulates the service process going away: Done is closed and every
// later call fails until Restore.
func (m *Mock) Sever() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.severed {
		return
	}
	m.severed = true
	m.sinks = nil
	close(m.done)
}

// Restore brings a severed mock back with a fresh Done channel.
func (m *Mock) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.severed {
		return
	}
	m.severed = false
	m.done = make(chan struct{})
}

// NotifyVolumeChanged delivers a raw volume notification to every sink.
func (m *Mock) NotifyVolumeChanged(id models.ParamID, value int) {
	for _, s := range m.snapshotSinks() {
		s.OnVolumeChanged(id, value)
	}
}

// NotifyMuteChanged delivers a raw mute notification to every sink.
func (m *Mock) NotifyMuteChanged(mute bool, source int) {
	for _, s := range m.snapshotSinks() {
		s.OnMuteChanged(mute, source)
	}
}

// NotifyVolumeBar delivers a raw volume bar notification to every sink.
func (m *Mock) NotifyVolumeBar(id models.ParamID, value, maxValue int) {
	for _, s := range m.snapshotSinks() {
		s.OnVolumeBar(id, value, maxValue)
	}
}

// NotifySecondaryMuteChanged delivers a raw secondary mute notification to every sink.
func (m *Mock) NotifySecondaryMuteChanged(mute bool) {
	for _, s := range m.snapshotSinks() {
		s.OnSecondaryMuteChanged(mute)
	}
}

func (m *Mock) snapshotSinks() []Sink {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Sink(nil), m.sinks...)
}

// enter counts the call and reports injected failures. Caller holds m.mu.
func (m *Mock) enter(method string) error {
	m.calls[method]++
	if m.fail || m.severed {
		return fmt.Errorf("%w: mock: %s failed", ErrUnavailable, method)
	}
	return nil
}

// --- Conn ---

func (m *Mock) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

// Close is a no-op: the mock outlives its connections so tests can redial it.
func (m *Mock) Close() error { return nil }

// --- integer parameters ---

func (m *Mock) param(method string, id models.ParamID, get func(*paramState) int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(method); err != nil {
		return 0, err
	}
	p, ok := m.params[id]
	if !ok || !p.available {
		return 0, nil
	}
	return get(p), nil
}

func (m *Mock) IsParamAvailable(id models.ParamID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("IsParamAvailable"); err != nil {
		return false, err
	}
	p, ok := m.params[id]
	return ok && p.available, nil
}

func (m *Mock) GetParamMinValue(id models.ParamID) (int, error) {
	return m.param("GetParamMinValue", id, func(p *paramState) int { return p.min })
}

func (m *Mock) GetParamMaxValue(id models.ParamID) (int, error) {
	return m.param("GetParamMaxValue", id, func(p *paramState) int { return p.max })
}

func (m *Mock) GetParamDefaultValue(id models.ParamID) (int, error) {
	return m.param("GetParamDefaultValue", id, func(p *paramState) int { return p.def })
}

func (m *Mock) GetParam(id models.ParamID) (int, error) {
	return m.param("GetParam", id, func(p *paramState) int { return p.value })
}

// SetParam clamps value to the parameter's range and, when the stored value
// changes, broadcasts the matching notification to every sink.
func (m *Mock) SetParam(id models.ParamID, value int) error {
	m.mu.Lock()
	if err := m.enter("SetParam"); err != nil {
		m.mu.Unlock()
		return err
	}
	p, ok := m.params[id]
	if !ok || !p.available {
		m.mu.Unlock()
		return nil
	}
	value = max(p.min, min(p.max, value))
	changed := p.value != value
	p.value = value
	sinks := append([]Sink(nil), m.sinks...)
	m.mu.Unlock()

	if !changed {
		return nil
	}
	for _, s := range sinks {
		switch id {
		case models.ParamMute:
			s.OnMuteChanged(value != 0, 0)
		case models.ParamMuteSecondary:
			s.OnSecondaryMuteChanged(value != 0)
		default:
			s.OnVolumeChanged(id, value)
		}
	}
	return nil
}

// --- pre-volume channels ---

func (m *Mock) channel(method string, path models.Path, ch models.Channel, get func(*gainState) float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(method); err != nil {
		return 0, err
	}
	g, ok := m.paths[path].channels[ch]
	if !ok || !g.available {
		return 0, nil
	}
	return get(g), nil
}

func (m *Mock) channelAvailable(method string, path models.Path, ch models.Channel) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(method); err != nil {
		return false, err
	}
	g, ok := m.paths[path].channels[ch]
	return ok && g.available, nil
}

func (m *Mock) setChannel(method string, path models.Path, ch models.Channel, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(method); err != nil {
		return err
	}
	if g, ok := m.paths[path].channels[ch]; ok && g.available {
		g.value = max(g.min, min(g.max, value))
	}
	return nil
}

func (m *Mock) resetChannels(method string, path models.Path) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(method); err != nil {
		return err
	}
	for _, g := range m.paths[path].channels {
		g.value = g.def
	}
	return nil
}

func (m *Mock) IsBuildInPreVolumeAvailable(ch models.Channel) (bool, error) {
	return m.channelAvailable("IsBuildInPreVolumeAvailable", models.PathPrimary, ch)
}

func (m *Mock) GetBuildInPreVolumeMinValue(ch models.Channel) (float64, error) {
	return m.channel("GetBuildInPreVolumeMinValue", models.PathPrimary, ch, func(g *gainState) float64 { return g.min })
}

func (m *Mock) GetBuildInPreVolumeMaxValue(ch models.Channel) (float64, error) {
	return m.channel("GetBuildInPreVolumeMaxValue", models.PathPrimary, ch, func(g *gainState) float64 { return g.max })
}

func (m *Mock) GetBuildInPreVolumeDefaultValue(ch models.Channel) (float64, error) {
	return m.channel("GetBuildInPreVolumeDefaultValue", models.PathPrimary, ch, func(g *gainState) float64 { return g.def })
}

func (m *Mock) GetBuildInPreVolumeValue(ch models.Channel) (float64, error) {
	return m.channel("GetBuildInPreVolumeValue", models.PathPrimary, ch, func(g *gainState) float64 { return g.value })
}

func (m *Mock) SetBuildInPreVolumeValue(ch models.Channel, value float64) error {
	return m.setChannel("SetBuildInPreVolumeValue", models.PathPrimary, ch, value)
}

func (m *Mock) ResetBuildInPreVolumeValue() error {
	return m.resetChannels("ResetBuildInPreVolumeValue", models.PathPrimary)
}

func (m *Mock) IsSecondaryBuildInPreVolumeAvailable(ch models.Channel) (bool, error) {
	return m.channelAvailable("IsSecondaryBuildInPreVolumeAvailable", models.PathSecondary, ch)
}

func (m *Mock) GetSecondaryBuildInPreVolumeMinValue(ch models.Channel) (float64, error) {
	return m.channel("GetSecondaryBuildInPreVolumeMinValue", models.PathSecondary, ch, func(g *gainState) float64 { return g.min })
}

func (m *Mock) GetSecondaryBuildInPreVolumeMaxValue(ch models.Channel) (float64, error) {
	return m.channel("GetSecondaryBuildInPreVolumeMaxValue", models.PathSecondary, ch, func(g *gainState) float64 { return g.max })
}

func (m *Mock) GetSecondaryBuildInPreVolumeDefaultValue(ch models.Channel) (float64, error) {
	return m.channel("GetSecondaryBuildInPreVolumeDefaultValue", models.PathSecondary, ch, func(g *gainState) float64 { return g.def })
}

func (m *Mock) GetSecondaryBuildInPreVolumeValue(ch models.Channel) (float64, error) {
	return m.channel("GetSecondaryBuildInPreVolumeValue", models.PathSecondary, ch, func(g *gainState) float64 { return g.value })
}

func (m *Mock) SetSecondaryBuildInPreVolumeValue(ch models.Channel, value float64) error {
	return m.setChannel("SetSecondaryBuildInPreVolumeValue", models.PathSecondary, ch, value)
}

func (m *Mock) ResetSecondaryBuildInPreVolumeValue() error {
	return m.resetChannels("ResetSecondaryBuildInPreVolumeValue", models.PathSecondary)
}

// --- volume gain curves ---

func (m *Mock) pathValue(method string, path models.Path, get func(*pathState) float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(method); err != nil {
		return 0, err
	}
	return get(m.paths[path]), nil
}

func (m *Mock) deviceAvailable(method string, path models.Path) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(method); err != nil {
		return false, err
	}
	return m.paths[path].deviceAvailable, nil
}

func gainAt(vol int) func(*pathState) float64 {
	return func(p *pathState) float64 {
		if g, ok := p.gain[vol]; ok {
			return g
		}
		return p.defaultGain(vol)
	}
}

func (m *Mock) setGain(method string, path models.Path, vol int, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(method); err != nil {
		return err
	}
	p := m.paths[path]
	p.gain[vol] = max(p.gainMin, min(p.gainMax, value))
	return nil
}

func (m *Mock) resetGain(method string, path models.Path) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(method); err != nil {
		return err
	}
	clear(m.paths[path].gain)
	return nil
}

func (m *Mock) IsMasterAudioDeviceAvailable() (bool, error) {
	return m.deviceAvailable("IsMasterAudioDeviceAvailable", models.PathPrimary)
}

func (m *Mock) GetMasterVolumeGainMinValue() (float64, error) {
	return m.pathValue("GetMasterVolumeGainMinValue", models.PathPrimary, func(p *pathState) float64 { return p.gainMin })
}

func (m *Mock) GetMasterVolumeGainMaxValue() (float64, error) {
	return m.pathValue("GetMasterVolumeGainMaxValue", models.PathPrimary, func(p *pathState) float64 { return p.gainMax })
}

func (m *Mock) GetMasterVolumeGainDefaultValue(vol int) (float64, error) {
	return m.pathValue("GetMasterVolumeGainDefaultValue", models.PathPrimary, func(p *pathState) float64 { return p.defaultGain(vol) })
}

func (m *Mock) GetMasterVolumeGainValue(vol int) (float64, error) {
	return m.pathValue("GetMasterVolumeGainValue", models.PathPrimary, gainAt(vol))
}

func (m *Mock) SetMasterVolumeGainValue(vol int, value float64) error {
	return m.setGain("SetMasterVolumeGainValue", models.PathPrimary, vol, value)
}

func (m *Mock) ResetMasterVolumeGainValue() error {
	return m.resetGain("ResetMasterVolumeGainValue", models.PathPrimary)
}

func (m *Mock) IsSecondaryAudioDeviceAvailable() (bool, error) {
	return m.deviceAvailable("IsSecondaryAudioDeviceAvailable", models.PathSecondary)
}

func (m *Mock) GetSecondaryVolumeGainMinValue() (float64, error) {
	return m.pathValue("GetSecondaryVolumeGainMinValue", models.PathSecondary, func(p *pathState) float64 { return p.gainMin })
}

func (m *Mock) GetSecondaryVolumeGainMaxValue() (float64, error) {
	return m.pathValue("GetSecondaryVolumeGainMaxValue", models.PathSecondary, func(p *pathState) float64 { return p.gainMax })
}

func (m *Mock) GetSecondaryVolumeGainDefaultValue(vol int) (float64, error) {
	return m.pathValue("GetSecondaryVolumeGainDefaultValue", models.PathSecondary, func(p *pathState) float64 { return p.defaultGain(vol) })
}

func (m *Mock) GetSecondaryVolumeGainValue(vol int) (float64, error) {
	return m.pathValue("GetSecondaryVolumeGainValue", models.PathSecondary, gainAt(vol))
}

func (m *Mock) SetSecondaryVolumeGainValue(vol int, value float64) error {
	return m.setGain("SetSecondaryVolumeGainValue", models.PathSecondary, vol, value)
}

func (m *Mock) ResetSecondaryVolumeGainValue() error {
	return m.resetGain("ResetSecondaryVolumeGainValue", models.PathSecondary)
}

// --- volume ranges ---

func (m *Mock) volumeBound(method string, path models.Path, upper bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(method); err != nil {
		return 0, err
	}
	if upper {
		return m.paths[path].volMax, nil
	}
	return m.paths[path].volMin, nil
}

func (m *Mock) GetMasterVolumeMin() (int, error) {
	return m.volumeBound("GetMasterVolumeMin", models.PathPrimary, false)
}

func (m *Mock) GetMasterVolumeMax() (int, error) {
	return m.volumeBound("GetMasterVolumeMax", models.PathPrimary, true)
}

func (m *Mock) GetSecondaryVolumeMin() (int, error) {
	return m.volumeBound("GetSecondaryVolumeMin", models.PathSecondary, false)
}

func (m *Mock) GetSecondaryVolumeMax() (int, error) {
	return m.volumeBound("GetSecondaryVolumeMax", models.PathSecondary, true)
}

// --- volume bar ---

// showBar makes id the active volume and broadcasts a show notification.
func (m *Mock) showBar(method string, id models.ParamID) error {
	m.mu.Lock()
	if err := m.enter(method); err != nil {
		m.mu.Unlock()
		return err
	}
	m.activeVolume = id
	m.barVisible = true
	var value, maxValue int
	if p, ok := m.params[id]; ok {
		value, maxValue = p.value, p.max
	}
	sinks := append([]Sink(nil), m.sinks...)
	m.mu.Unlock()

	for _, s := range sinks {
		s.OnVolumeBar(id, value, maxValue)
	}
	return nil
}

func (m *Mock) hideBar(method string) error {
	m.mu.Lock()
	if err := m.enter(method); err != nil {
		m.mu.Unlock()
		return err
	}
	m.barVisible = false
	sinks := append([]Sink(nil), m.sinks...)
	m.mu.Unlock()

	for _, s := range sinks {
		s.OnVolumeBar(models.ParamNone, 0, 0)
	}
	return nil
}

func (m *Mock) ShowVolumeBar() error {
	return m.showBar("ShowVolumeBar", models.ParamVolumeMaster)
}

func (m *Mock) ShowSecondaryVolumeBar() error {
	return m.showBar("ShowSecondaryVolumeBar", models.ParamVolumeSecondary)
}

func (m *Mock) HideVolumeBar() error {
	return m.hideBar("HideVolumeBar")
}

func (m *Mock) ToggleVolumeBar() error {
	m.mu.Lock()
	visible, active := m.barVisible, m.activeVolume
	m.mu.Unlock()
	if visible {
		return m.hideBar("ToggleVolumeBar")
	}
	return m.showBar("ToggleVolumeBar", active)
}

func (m *Mock) GetActiveVolumeID() (models.ParamID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetActiveVolumeID"); err != nil {
		return 0, err
	}
	return m.activeVolume, nil
}

// --- auxiliary operations ---

func (m *Mock) GetEqGains(mode int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetEqGains"); err != nil {
		return nil, err
	}
	gains, ok := m.eq[mode]
	if !ok {
		return nil, nil
	}
	return append([]int(nil), gains...), nil
}

func (m *Mock) RequestInternalShortMute(durationMS int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("RequestInternalShortMute"); err != nil {
		return err
	}
	m.shortMutes = append(m.shortMutes, durationMS)
	return nil
}

func (m *Mock) SetAnalogMediaVolumePercent(percent int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("SetAnalogMediaVolumePercent"); err != nil {
		return err
	}
	m.mediaPercent = max(0, min(100, percent))
	return nil
}

func (m *Mock) GetMasterAudioChannel() (models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetMasterAudioChannel"); err != nil {
		return 0, err
	}
	return m.masterChannel, nil
}

func (m *Mock) SetChipParam(chip, param int, values [4]float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("SetChipParam"); err != nil {
		return err
	}
	m.chipParams[[2]int{chip, param}] = values
	return nil
}

func (m *Mock) AddExpertAudioEffect(effect int, path string, apply bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AddExpertAudioEffect"); err != nil {
		return err
	}
	if _, ok := m.effects[effect]; ok {
		m.effects[effect] = path
	}
	return nil
}

func (m *Mock) GetAvailableExpertAudioEffects() ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetAvailableExpertAudioEffects"); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(m.effects))
	for id := range m.effects {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *Mock) GetExpertAudioEffectFile(effect int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetExpertAudioEffectFile"); err != nil {
		return "", err
	}
	return m.effects[effect], nil
}

// --- callbacks ---

func (m *Mock) RegisterCallback(sink Sink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("RegisterCallback"); err != nil {
		return err
	}
	if !slices.Contains(m.sinks, sink) {
		m.sinks = append(m.sinks, sink)
	}
	return nil
}

func (m *Mock) UnregisterCallback(sink Sink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("UnregisterCallback"); err != nil {
		return err
	}
	m.sinks = slices.DeleteFunc(m.sinks, func(s Sink) bool { return s == sink })
	return nil
}

// Ensure Mock implements Conn
var _ Conn = (*Mock)(nil)
