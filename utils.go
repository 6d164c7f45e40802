package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// files

func cleanPath(path string) string {
	if len(path) == 0 {
		return path
	}
	path, err := filepath.Abs(path)
	logFatalError(err)
	return filepath.ToSlash(filepath.Clean(path))
}

func fileExists(path string) bool {
	if len(path) == 0 {
		return false
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}
	return true
}

// The returned ext is always lower-cased and contains a prefix "." dot (e.g. ".obj")
func fileExtension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func fileSize(path string) int64 {
	if len(path) == 0 {
		return 0
	}
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}

// formatting

func formatInt(num int) string {
	str := intToString(num)
	for i := len(str) - 1; i > 2; i -= 3 {
		str = str[0:i-2] + " " + str[i-2:]
	}
	return str
}

func intToString(num int) string {
	return strconv.Itoa(num)
}

// shortest representation that reads back to the same float32
func formatFloat32(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func formatBytes(numBytes int64) string {
	prefix := ""
	numAbs := numBytes
	if numBytes < 0 {
		prefix = "-"
		numAbs = -numBytes
	}
	if numAbs >= 1024 {
		if numAbs >= 1024*1024 {
			if numAbs >= 1024*1024*1024 {
				return fmt.Sprintf("%s%.*f GB", prefix, 2, (float32(numAbs)/1024.0)/1024.0/1024.0)
			}
			return fmt.Sprintf("%s%.*f MB", prefix, 2, (float32(numAbs)/1024.0)/1024.0)
		}
		return fmt.Sprintf("%s%.*f kB", prefix, 2, float32(numAbs)/1024.0)
	}
	return fmt.Sprintf("%s%d B", prefix, numAbs)
}

func formatDuration(d time.Duration) (duration string) {
	if d.Minutes() < 1.0 {
		// sec
		duration = fmt.Sprintf("%ss", strconv.FormatFloat(d.Seconds(), 'f', 2, 64))
	} else if d.Minutes() < 60.0 {
		// min sec
		s := math.Mod(d.Seconds(), 60.0)
		duration = fmt.Sprintf("%dm %ss", int(math.Floor(d.Minutes())),
			strconv.FormatFloat(s, 'f', 2, 64))
	} else {
		// hour min sec
		s := math.Mod(d.Seconds(), 60.0)
		m := math.Mod(d.Minutes(), 60.0)
		duration = fmt.Sprintf("%dh %dm %ss", int(math.Floor(d.Hours())),
			int(math.Floor(m)), strconv.FormatFloat(s, 'f', 2, 64))
	}
	return
}
