// Package invoker drives a single timeout-guarded call into a loaded
// contract: it snapshots budget/memory at each named phase, captures
// storage before and after, classifies the host's nested result, and
// emits both a human display string and a machine-readable execution
// record.
package invoker

import (
	"fmt"
	"os"
	"time"

	"github.com/nspcc-dev/contractdbg/internal/errorcatalog"
	"github.com/nspcc-dev/contractdbg/internal/errs"
	"github.com/nspcc-dev/contractdbg/internal/hostvm"
	"github.com/nspcc-dev/contractdbg/internal/value"
	"github.com/prometheus/client_golang/prometheus"
)

// ExecutionRecord is the machine-readable result of one invocation
// attempt. It replaces any previous record held by a caller; it is not
// accumulated across calls.
type ExecutionRecord struct {
	Function      string
	Args          []value.Serialized
	Result        *value.Serialized
	ErrorMessage  string
	StorageBefore map[string]string
	StorageAfter  map[string]string
}

// StorageFunc captures the full storage mapping at the point it is
// called.
type StorageFunc func() (map[string]string, error)

var (
	budgetGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "contractdbg",
		Name:      "budget_bytes_consumed",
		Help:      "Host budget bytes consumed as of the most recent invocation.",
	})
	memoryGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "contractdbg",
		Name:      "memory_bytes_consumed",
		Help:      "Host linear-memory bytes consumed as of the most recent invocation.",
	})
)

func init() {
	prometheus.MustRegister(budgetGauge, memoryGauge)
}

// Invoker drives calls against one Host for the lifetime of an executor
// session, accumulating memory-tracker phase history across calls.
type Invoker struct {
	Tracker  *MemoryTracker
	Progress ProgressReporter
}

func New(progress ProgressReporter) *Invoker {
	if progress == nil {
		progress = NopProgress{}
	}
	return &Invoker{Tracker: NewMemoryTracker(0), Progress: progress}
}

// Invoke runs the full sequence from spec.md's invoker contract:
// invoke:start, storage_before, the guest call itself (timeout-guarded
// when timeoutSecs > 0), storage_after, result classification, and
// budget/memory emission. It returns the human display string and the
// ExecutionRecord together, since both are produced from the same
// classified Outcome.
func (inv *Invoker) Invoke(
	host hostvm.Host,
	address string,
	errDB *errorcatalog.Database,
	function string,
	args []value.Value,
	timeoutSecs int,
	storageFn StorageFunc,
) (display string, record *ExecutionRecord, err error) {
	inv.Progress.Start(fmt.Sprintf("invoking %s", function))
	defer inv.Progress.Finish()

	inv.Tracker.Record("invoke:start", host.BudgetBytesConsumed())

	storageBefore, err := storageFn()
	if err != nil {
		return "", nil, errs.ExecutionError("capturing storage_before: %v", err)
	}
	inv.Tracker.Record("invoke:storage_before", host.BudgetBytesConsumed())

	serializedArgs := make([]value.Serialized, len(args))
	for i, a := range args {
		serializedArgs[i] = a.Serialize()
	}

	done := make(chan struct{})
	if timeoutSecs > 0 {
		go watchdog(timeoutSecs, done)
	}

	result, callErr := host.Call(address, function, args)
	close(done)
	if callErr != nil {
		return "", nil, errs.ExecutionError("host call failed: %v", callErr)
	}
	inv.Tracker.Record("invoke:invoke", host.BudgetBytesConsumed())

	storageAfter, err := storageFn()
	if err != nil {
		return "", nil, errs.ExecutionError("capturing storage_after: %v", err)
	}
	inv.Tracker.Record("invoke:storage_after", host.BudgetBytesConsumed())

	outcome := classify(result, errDB)
	inv.Tracker.Record("invoke:result_convert", host.BudgetBytesConsumed())

	record = &ExecutionRecord{
		Function:      function,
		Args:          serializedArgs,
		StorageBefore: storageBefore,
		StorageAfter:  storageAfter,
	}

	switch outcome.Kind {
	case OutcomeSuccess:
		serialized := outcome.Value.Serialize()
		record.Result = &serialized
		display = outcome.Display
	case OutcomeContractError:
		record.ErrorMessage = outcome.ErrorMessage
		display = outcome.ErrorMessage
		if outcome.ContractErrorDisplay != "" {
			display = fmt.Sprintf("%s (%s)", display, outcome.ContractErrorDisplay)
		}
	default:
		record.ErrorMessage = outcome.ErrorMessage
		display = outcome.ErrorMessage
	}

	budgetGauge.Set(float64(host.BudgetBytesConsumed()))
	memoryGauge.Set(float64(host.MemoryBytesConsumed()))

	return display, record, nil
}

// watchdog is the one-shot timeout thread: it exits silently if done is
// closed before the deadline, and kills the process with exit code 124
// if the deadline elapses first. The host is not presumed pre-emptible,
// so this is deliberately blunt: no attempt is made to tear the sandbox
// down gracefully.
func watchdog(timeoutSecs int, done <-chan struct{}) {
	select {
	case <-done:
		return
	case <-time.After(time.Duration(timeoutSecs) * time.Second):
		os.Exit(124)
	}
}
