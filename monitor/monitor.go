// Package monitor samples the memory footprint of processes through procfs.
package monitor

import (
	"errors"
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/procfs"
	"io/fs"
	"os"
	"strconv"
	"syscall"
)

type Process struct {
	Path string
	Args []string
	PID  int    // Process ID
	PPID int    // Parent Process ID
	RSS  uint64 // Resident Set Size, how much memory is mapped in.
	PSS  uint64 // Proportional Set Size, RSS with shared pages split among their users.
}

func (p Process) String() string {
	return fmt.Sprintf(
		"%d(%d)\t%s\t%s\t%s\t%v",
		p.PID,
		p.PPID,
		p.Path,
		humanize.IBytes(p.RSS),
		humanize.IBytes(p.PSS),
		p.Args,
	)
}

// ErrUnavailable is returned when the process exists but its memory cannot be read,
// as for processes of other users or kernel threads.
var ErrUnavailable = errors.New("monitor: process memory unavailable")

// Self samples the running process.
func Self() (Process, error) {
	return NewProcess(os.Getpid())
}

func NewProcess(pid int) (Process, error) {
	proc, err := procfs.NewProc(pid)
	if err != nil {
		return Process{}, fmt.Errorf("open proc %d: %w", pid, err)
	}
	ret, err := newProcess(proc)
	if err != nil {
		return Process{}, fmt.Errorf("sample proc %d: %w", pid, err)
	}
	return ret, nil
}

func newProcess(proc procfs.Proc) (Process, error) {
	executable, err := proc.Executable()
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return Process{}, ErrUnavailable
		}
		return Process{}, err
	}
	stat, err := proc.Stat()
	if err != nil {
		return Process{}, err
	}
	args, err := proc.CmdLine()
	if err != nil {
		return Process{}, err
	}
	rollup, err := proc.ProcSMapsRollup()
	if err != nil {
		// Kernel threads such as [kthreadd] report no such process on smaps_rollup.
		if errors.Is(err, syscall.ESRCH) || errors.Is(err, fs.ErrPermission) {
			return Process{}, ErrUnavailable
		}
		return Process{}, err
	}
	return Process{
		Path: executable,
		Args: args,
		PID:  stat.PID,
		PPID: stat.PPID,
		RSS:  rollup.Rss,
		PSS:  rollup.Pss,
	}, nil
}

// Growth describes how the footprint changed from before to after, negative when it shrank.
func Growth(before, after Process) string {
	return signedIBytes(int64(after.RSS)-int64(before.RSS)) + " RSS, " +
		signedIBytes(int64(after.PSS)-int64(before.PSS)) + " PSS"
}

func signedIBytes(delta int64) string {
	if delta < 0 {
		return "-" + humanize.IBytes(uint64(-delta))
	}
	return "+" + humanize.IBytes(uint64(delta))
}

// FormatPercent renders a ratio as a percentage with the given number of decimals, 0.5 being "50.0%" for one decimal.
func FormatPercent(value float64, decimals int) string {
	return strconv.FormatFloat(value*100, 'f', max(decimals, 0), 64) + "%"
}
