// Package entry collects a flight path from an interactive console session.
// Malformed input is rejected and re-prompted here; only validated values
// reach the trajectory constructor.
package entry

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"flightpath-sim/internal/sim/trajectory"
	"flightpath-sim/pkg/types"
)

// ReadTrajectory prompts on out and reads from in until a valid trajectory
// has been entered. It returns an error only when the input stream ends.
func ReadTrajectory(in io.Reader, out io.Writer, id types.VehicleID) (*trajectory.Trajectory, error) {
	sc := bufio.NewScanner(in)

	for {
		count, err := promptInt(sc, out, "Number of waypoints (>= 2): ", 2)
		if err != nil {
			return nil, err
		}

		waypoints := make([]types.Waypoint, 0, count)
		for i := 0; i < count; i++ {
			wp, err := promptWaypoint(sc, out, fmt.Sprintf("Waypoint %d (x y z): ", i+1))
			if err != nil {
				return nil, err
			}
			waypoints = append(waypoints, wp)
		}

		startTime, err := promptFloat(sc, out, "Start time: ")
		if err != nil {
			return nil, err
		}
		endTime, err := promptFloat(sc, out, "End time: ")
		if err != nil {
			return nil, err
		}

		tr, err := trajectory.New(id, waypoints, startTime, endTime)
		if err != nil {
			fmt.Fprintf(out, "Flight path rejected: %v. Starting over.\n", err)
			continue
		}
		return tr, nil
	}
}

func promptInt(sc *bufio.Scanner, out io.Writer, prompt string, minValue int) (int, error) {
	for {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			return 0, scanErr(sc)
		}
		text := strings.TrimSpace(sc.Text())
		v, err := strconv.Atoi(text)
		if err != nil || v < minValue {
			fmt.Fprintf(out, "Invalid count %q, need an integer >= %d.\n", text, minValue)
			continue
		}
		return v, nil
	}
}

func promptFloat(sc *bufio.Scanner, out io.Writer, prompt string) (float64, error) {
	for {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			return 0, scanErr(sc)
		}
		text := strings.TrimSpace(sc.Text())
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			fmt.Fprintf(out, "Invalid number %q, try again.\n", text)
			continue
		}
		return v, nil
	}
}

func promptWaypoint(sc *bufio.Scanner, out io.Writer, prompt string) (types.Waypoint, error) {
	for {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			return types.Waypoint{}, scanErr(sc)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != 3 {
			fmt.Fprintf(out, "Expected three coordinates, got %d.\n", len(fields))
			continue
		}
		var coords [3]float64
		ok := true
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				fmt.Fprintf(out, "Invalid coordinate %q, try again.\n", f)
				ok = false
				break
			}
			coords[i] = v
		}
		if !ok {
			continue
		}
		return types.NewVec3(coords[0], coords[1], coords[2]), nil
	}
}

func scanErr(sc *bufio.Scanner) error {
	if err := sc.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}
