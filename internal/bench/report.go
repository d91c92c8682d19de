package bench

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReportHeader is the first row of every report.
var ReportHeader = []string{
	"source",
	"scheme",
	"original_bits",
	"encoded_bits",
	"ratio",
	"encode_us",
	"decode_us",
	"verified",
	"error",
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// WriteReport writes results as CSV.  If bom is set, the output starts with
// a UTF-8 byte order mark so spreadsheet tools detect the encoding.
func WriteReport(w io.Writer, results []Result, bom bool) error {
	if bom {
		if _, err := w.Write(utf8BOM); err != nil {
			return err
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ReportHeader); err != nil {
		return err
	}
	for _, res := range results {
		if err := cw.Write(reportRow(res)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReportFile writes the report to path, replacing any existing file.
func WriteReportFile(path string, results []Result, bom bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := WriteReport(bw, results, bom); err != nil {
		_ = f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

func reportRow(res Result) []string {
	var errText string
	if res.Err != nil {
		errText = fmt.Sprintf("%s: %v", ErrorKind(res.Err), res.Err)
	}
	return []string{
		res.Source,
		string(res.Scheme),
		strconv.FormatUint(res.OriginalBits, 10),
		strconv.FormatUint(res.EncodedBits, 10),
		strconv.FormatFloat(res.Ratio(), 'f', 4, 64),
		strconv.FormatInt(res.EncodeTime.Microseconds(), 10),
		strconv.FormatInt(res.DecodeTime.Microseconds(), 10),
		strconv.FormatBool(res.Verified),
		errText,
	}
}
