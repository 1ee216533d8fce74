package spectrum

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrFormat reports a malformed spectrum text file.
var ErrFormat = errors.New("spectrum: malformed input")

// Header is the column header written by Write.
const Header = "waveobs\tflux\terr"

// Read parses whitespace-separated "waveobs flux [err]" columns. Blank
// lines and lines starting with '#' are skipped, as is a leading header
// line whose first field is not a number. Gzip-compressed input is
// detected from its magic bytes.
func Read(r io.Reader) (*Spectrum, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("spectrum: open gzip stream: %w", err)
		}
		defer zr.Close()
		br = bufio.NewReader(zr)
	}

	var wave, flux, errs []float64
	headerDone := false
	sc := bufio.NewScanner(br)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		w, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			if !headerDone {
				// Header line.
				headerDone = true
				continue
			}
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
		}
		headerDone = true
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: want at least 2 columns, got %d", ErrFormat, line, len(fields))
		}
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
		}

		wave = append(wave, w)
		flux = append(flux, f)
		if len(fields) >= 3 {
			e, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
			}
			errs = append(errs, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("spectrum: read: %w", err)
	}
	if errs != nil && len(errs) != len(wave) {
		return nil, fmt.Errorf("%w: error column present on %d of %d rows", ErrFormat, len(errs), len(wave))
	}

	s := &Spectrum{Wave: wave, Flux: flux, Err: errs}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Write emits s as tab-separated columns under Header. Missing errors are
// written as 0.
func Write(w io.Writer, s *Spectrum) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}

	buf := make([]byte, 0, 64)
	for i := range s.Wave {
		e := 0.0
		if s.Err != nil {
			e = s.Err[i]
		}
		buf = buf[:0]
		buf = strconv.AppendFloat(buf, s.Wave[i], 'g', -1, 64)
		buf = append(buf, '\t')
		buf = strconv.AppendFloat(buf, s.Flux[i], 'g', -1, 64)
		buf = append(buf, '\t')
		buf = strconv.AppendFloat(buf, e, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadFile reads a spectrum from path.
func ReadFile(path string) (*Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteFile writes s to path, gzip-compressed when path ends in ".gz".
func WriteFile(path string, s *Spectrum) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(path, ".gz") {
		return Write(f, s)
	}

	zw := gzip.NewWriter(f)
	if err := Write(zw, s); err != nil {
		return err
	}
	return zw.Close()
}
