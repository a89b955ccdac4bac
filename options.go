package taskqueue

// Hooks are called around every blocking wait inside the queue: parking on a
// condition and waiting for a contended mutex. An embedding host that holds a
// process-wide lock while running its own code uses them to drop that lock
// while the goroutine is suspended and take it back afterwards.
//
// BlockEnter runs immediately before the wait and BlockExit immediately after
// it. BlockExit runs with the queue mutex held. Either may be nil.
type Hooks struct {
	BlockEnter func()
	BlockExit  func()
}

func (h Hooks) enter() {
	if h.BlockEnter != nil {
		h.BlockEnter()
	}
}

func (h Hooks) exit() {
	if h.BlockExit != nil {
		h.BlockExit()
	}
}

func (h Hooks) set() bool {
	return h.BlockEnter != nil || h.BlockExit != nil
}

// NotifyPolicy selects how single-item Put and Get wake waiters.
type NotifyPolicy int

const (
	// NotifyAll broadcasts to every waiter on the relevant condition after
	// each Put and Get.
	NotifyAll NotifyPolicy = iota

	// NotifyAdaptive wakes a single waiter after a single-item Put or Get
	// unless a batch caller is parked on the same condition, in which case it
	// broadcasts. Batch operations always broadcast.
	NotifyAdaptive
)

func (p NotifyPolicy) String() string {
	switch p {
	case NotifyAll:
		return "all"
	case NotifyAdaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

type options struct {
	hooks    Hooks
	policy   NotifyPolicy
	prealloc int
}

// Option configures a Queue at construction time.
type Option func(*options)

// WithHooks installs host hooks invoked around blocking waits.
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}

// WithNotifyPolicy sets the wake-up policy. The default is NotifyAll.
func WithNotifyPolicy(p NotifyPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithInitialCapacity preallocates storage for n items. It does not bound
// the queue; see New.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		o.prealloc = n
	}
}
