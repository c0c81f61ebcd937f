package types

import (
	"slices"
	"strconv"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

func (r Status) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"server":`)
	w.String(r.Server)
	w.RawString(`,"status":`)
	w.String(r.Status)
	w.RawString(`,"message":`)
	w.String(r.Message)
	w.RawString(`,"code":`)
	w.Int(r.Code)
	w.RawByte('}')
}

func (r Status) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	r.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

func (r *Status) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "server":
			r.Server = in.String()
		case "status":
			r.Status = in.String()
		case "message":
			r.Message = in.String()
		case "code":
			r.Code = in.Int()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func (r *Status) UnmarshalJSON(data []byte) error {
	in := jlexer.Lexer{Data: data}
	r.UnmarshalEasyJSON(&in)
	return in.Error()
}

func (r RunRecord) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"id":`)
	w.String(r.ID)
	w.RawString(`,"url":`)
	w.String(r.URL)
	w.RawString(`,"concurrency":`)
	w.Int(r.Concurrency)
	w.RawString(`,"requests":`)
	w.Int(r.Requests)
	w.RawString(`,"started_at":`)
	w.Raw(r.StartedAt.MarshalJSON())
	w.RawString(`,"elapsed_ns":`)
	w.Int64(r.ElapsedNs)
	w.RawString(`,"count":`)
	w.Int(r.Count)
	w.RawString(`,"average_ns":`)
	w.Int64(r.AverageNs)
	w.RawString(`,"median_ns":`)
	w.Int64(r.MedianNs)
	w.RawString(`,"min_ns":`)
	w.Int64(r.MinNs)
	w.RawString(`,"max_ns":`)
	w.Int64(r.MaxNs)

	w.RawString(`,"percentiles_ns":[`)
	for i, v := range r.PercentilesNs {
		if i > 0 {
			w.RawByte(',')
		}
		w.Int64(v)
	}
	w.RawString(`],"histogram":[`)
	for i, v := range r.Histogram {
		if i > 0 {
			w.RawByte(',')
		}
		w.Int(v)
	}
	w.RawString(`],"transferred_bytes":`)
	w.Uint64(r.TransferredBytes)

	w.RawString(`,"status_codes":{`)
	codes := make([]int, 0, len(r.StatusCodes))
	for code := range r.StatusCodes {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for i, code := range codes {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(strconv.Itoa(code))
		w.RawByte(':')
		w.Int(r.StatusCodes[code])
	}
	w.RawString(`}}`)
}

func (r RunRecord) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	r.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

func (r *RunRecord) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "id":
			r.ID = in.String()
		case "url":
			r.URL = in.String()
		case "concurrency":
			r.Concurrency = in.Int()
		case "requests":
			r.Requests = in.Int()
		case "started_at":
			if data := in.Raw(); in.Ok() {
				in.AddError(r.StartedAt.UnmarshalJSON(data))
			}
		case "elapsed_ns":
			r.ElapsedNs = in.Int64()
		case "count":
			r.Count = in.Int()
		case "average_ns":
			r.AverageNs = in.Int64()
		case "median_ns":
			r.MedianNs = in.Int64()
		case "min_ns":
			r.MinNs = in.Int64()
		case "max_ns":
			r.MaxNs = in.Int64()
		case "percentiles_ns":
			r.PercentilesNs = []int64{}
			in.Delim('[')
			for !in.IsDelim(']') {
				r.PercentilesNs = append(r.PercentilesNs, in.Int64())
				in.WantComma()
			}
			in.Delim(']')
		case "histogram":
			r.Histogram = []int{}
			in.Delim('[')
			for !in.IsDelim(']') {
				r.Histogram = append(r.Histogram, in.Int())
				in.WantComma()
			}
			in.Delim(']')
		case "transferred_bytes":
			r.TransferredBytes = in.Uint64()
		case "status_codes":
			r.StatusCodes = make(map[int]int)
			in.Delim('{')
			for !in.IsDelim('}') {
				key := in.String()
				in.WantColon()
				n := in.Int()
				code, err := strconv.Atoi(key)
				if err != nil {
					in.AddError(err)
				} else {
					r.StatusCodes[code] = n
				}
				in.WantComma()
			}
			in.Delim('}')
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func (r *RunRecord) UnmarshalJSON(data []byte) error {
	in := jlexer.Lexer{Data: data}
	r.UnmarshalEasyJSON(&in)
	return in.Error()
}
