package perflog_reader

import (
	"errors"
	"fmt"
	"slices"
)

// extractCounterInfoFromCounterPath gets machine name, object name, instance
// name (if available) and counter name from a counter path.
// General counter path pattern is: \\machine\object(parent/instance#index)\counter
// parent/instance#index part is skipped in single instance objects (e.g. Memory): \\machine\object\counter
//
//nolint:revive //function-result-limit conditionally 5 return results allowed
func extractCounterInfoFromCounterPath(counterPath string) (machine string, object string, instance string, counter string, err error) {
	leftMachineBorderIndex := -1
	rightObjectBorderIndex := -1
	leftObjectBorderIndex := -1
	leftCounterBorderIndex := -1
	rightInstanceBorderIndex := -1
	leftInstanceBorderIndex := -1
	var bracketLevel int

	for i := len(counterPath) - 1; i >= 0; i-- {
		switch counterPath[i] {
		case '\\':
			if bracketLevel == 0 {
				if leftCounterBorderIndex == -1 {
					leftCounterBorderIndex = i
				} else if leftObjectBorderIndex == -1 {
					leftObjectBorderIndex = i
				} else if leftMachineBorderIndex == -1 {
					leftMachineBorderIndex = i
				}
			}
		case '(':
			bracketLevel--
			if leftInstanceBorderIndex == -1 && bracketLevel == 0 && leftObjectBorderIndex == -1 && leftCounterBorderIndex > -1 {
				leftInstanceBorderIndex = i
				rightObjectBorderIndex = i
			}
		case ')':
			if rightInstanceBorderIndex == -1 && bracketLevel == 0 && leftCounterBorderIndex > -1 {
				rightInstanceBorderIndex = i
			}
			bracketLevel++
		}
	}
	if rightObjectBorderIndex == -1 {
		rightObjectBorderIndex = leftCounterBorderIndex
	}
	if rightObjectBorderIndex == -1 || leftObjectBorderIndex == -1 {
		return "", "", "", "", errors.New("cannot parse object from: " + counterPath)
	}

	if leftMachineBorderIndex > -1 {
		// validate there is leading \\ and not empty machine (\\\O)
		if leftMachineBorderIndex != 1 || leftMachineBorderIndex == leftObjectBorderIndex-1 {
			return "", "", "", "", errors.New("cannot parse machine from: " + counterPath)
		}
		machine = counterPath[leftMachineBorderIndex+1 : leftObjectBorderIndex]
	}

	if leftInstanceBorderIndex > -1 && rightInstanceBorderIndex > -1 {
		instance = counterPath[leftInstanceBorderIndex+1 : rightInstanceBorderIndex]
	} else if (leftInstanceBorderIndex == -1 && rightInstanceBorderIndex > -1) || (leftInstanceBorderIndex > -1 && rightInstanceBorderIndex == -1) {
		return "", "", "", "", errors.New("cannot parse instance from: " + counterPath)
	}
	object = counterPath[leftObjectBorderIndex+1 : rightObjectBorderIndex]
	counter = counterPath[leftCounterBorderIndex+1:]
	return machine, object, instance, counter, nil
}

// formatPath builds a fully-qualified counter path. An empty instance means a
// singleton object, whose path carries no instance part.
func formatPath(machine, objectName, instance, counter string) string {
	path := ""
	if instance == "" {
		path = fmt.Sprintf(`\%s\%s`, objectName, counter)
	} else {
		path = fmt.Sprintf(`\%s(%s)\%s`, objectName, instance, counter)
	}
	if machine != "" {
		path = fmt.Sprintf(`\\%s%s`, machine, path)
	}
	return path
}

// checkError returns nil when the error is a PDH error whose symbolic name
// the operator listed in IgnoredErrors, the original error otherwise.
func (m *PerfLogReader) checkError(err error) error {
	var pdhErr *pdhError
	if errors.As(err, &pdhErr) {
		if slices.Contains(m.IgnoredErrors, pdhErrors[pdhErr.errorCode]) {
			return nil
		}
		return err
	}
	return err
}

// isNoSuchObject reports the "object not in log" status of item enumeration,
// which drops the object from the catalog instead of failing the walk.
func isNoSuchObject(err error) bool {
	var pdhErr *pdhError
	return errors.As(err, &pdhErr) && pdhErr.errorCode == pdhCstatusNoObject
}

// isLogExhausted reports the collect status that marks the end of the bound
// log, the normal termination of a read loop.
func isLogExhausted(err error) bool {
	var pdhErr *pdhError
	return errors.As(err, &pdhErr) && pdhErr.errorCode == pdhNoMoreData
}

// isValueStatusError reports errors raised from the CStatus field of a
// formatted value. These mark a counter with no sample at one timestamp and
// never abort a read.
func isValueStatusError(err error) bool {
	var pdhErr *pdhError
	return errors.As(err, &pdhErr) && pdhErr.fromValueStatus
}

// isKnownCounterDataError reports call-level statuses that mean "no usable
// sample here" rather than a broken query.
func isKnownCounterDataError(err error) bool {
	var pdhErr *pdhError
	if errors.As(err, &pdhErr) && (pdhErr.errorCode == pdhInvalidData ||
		pdhErr.errorCode == pdhCalcNegativeDenominator ||
		pdhErr.errorCode == pdhCalcNegativeValue ||
		pdhErr.errorCode == pdhCstatusInvalidData ||
		pdhErr.errorCode == pdhCstatusNoInstance ||
		pdhErr.errorCode == pdhNoData) {
		return true
	}
	return false
}
