package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path.
// maxLines <= 0 returns the whole file.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var (
		ring  []string
		count int
		idx   int
	)
	if maxLines > 0 {
		ring = make([]string, maxLines)
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if maxLines <= 0 {
			ring = append(ring, scanner.Text())
			count++
			continue
		}
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if maxLines <= 0 || count < maxLines {
		return ring[:count:count], nil
	}
	lines := make([]string, count)
	for i := 0; i < count; i++ {
		lines[i] = ring[(idx+i)%maxLines]
	}
	return lines, nil
}

// Entry is one console-encoded log line split into its columns.
type Entry struct {
	Time    string
	Level   string
	Message string
	Fields  string
	Raw     string
}

// Parse splits a zap console line ("time\tlevel\tcaller\tmsg\tfields").
// Lines that do not follow the layout come back with only Raw and Message set.
func Parse(line string) Entry {
	parts := strings.Split(line, "\t")
	if len(parts) < 4 {
		return Entry{Message: line, Raw: line}
	}
	entry := Entry{
		Time:    parts[0],
		Level:   strings.ToLower(parts[1]),
		Message: parts[3],
		Raw:     line,
	}
	if len(parts) > 4 {
		entry.Fields = strings.Join(parts[4:], " ")
	}
	return entry
}
