package session

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"time"
)

const (
	sessionFormatVersionCurrent = 2
	sessionFormatVersionV1      = 1
)

// Encode serializes s into the current binary layout:
//
//	version u8 | id i64 | name u16+bytes | date i64 ms | teacher i64 |
//	description u16+bytes | members u32 + i64... | created i64 ms | updated i64 ms
//
// Version 1 lacked the created/updated timestamps.
func Encode(s *Session) ([]byte, error) {
	if s == nil {
		return nil, errors.New("nil session")
	}
	if len(s.Name) > math.MaxUint16 {
		return nil, errors.New("name too long")
	}
	if len(s.Description) > math.MaxUint16 {
		return nil, errors.New("description too long")
	}
	if uint64(len(s.Members)) > math.MaxUint32 {
		return nil, errors.New("too many members")
	}

	var buf bytes.Buffer
	buf.Grow(1 + 8 + 2 + len(s.Name) + 8 + 8 + 2 + len(s.Description) + 4 + 8*len(s.Members) + 16)

	buf.WriteByte(sessionFormatVersionCurrent)
	writeInt64(&buf, s.ID)
	writeString16(&buf, s.Name)
	writeInt64(&buf, unixMilli(s.Date))
	writeInt64(&buf, s.TeacherID)
	writeString16(&buf, s.Description)

	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(s.Members)))
	buf.Write(n[:])
	for _, id := range s.Members {
		writeInt64(&buf, id)
	}

	writeInt64(&buf, unixMilli(s.CreatedAt))
	writeInt64(&buf, unixMilli(s.UpdatedAt))

	return buf.Bytes(), nil
}

// Decode parses any supported layout version.
func Decode(data []byte) (*Session, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != sessionFormatVersionCurrent && version != sessionFormatVersionV1 {
		return nil, errors.New("invalid session version")
	}

	s := &Session{}

	if err := binary.Read(reader, binary.BigEndian, &s.ID); err != nil {
		return nil, err
	}
	if s.Name, err = readString16(reader); err != nil {
		return nil, err
	}
	var date int64
	if err := binary.Read(reader, binary.BigEndian, &date); err != nil {
		return nil, err
	}
	s.Date = fromUnixMilli(date)
	if err := binary.Read(reader, binary.BigEndian, &s.TeacherID); err != nil {
		return nil, err
	}
	if s.Description, err = readString16(reader); err != nil {
		return nil, err
	}

	var count uint32
	if err := binary.Read(reader, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	// Each member needs eight bytes; reject counts the payload cannot hold.
	if int64(count)*8 > int64(reader.Len()) {
		return nil, errors.New("member count exceeds payload")
	}
	if count > 0 {
		s.Members = make([]int64, count)
		if err := binary.Read(reader, binary.BigEndian, s.Members); err != nil {
			return nil, err
		}
	}

	if version == sessionFormatVersionCurrent {
		var created, updated int64
		if err := binary.Read(reader, binary.BigEndian, &created); err != nil {
			return nil, err
		}
		if err := binary.Read(reader, binary.BigEndian, &updated); err != nil {
			return nil, err
		}
		s.CreatedAt = fromUnixMilli(created)
		s.UpdatedAt = fromUnixMilli(updated)
	}

	if reader.Len() != 0 {
		return nil, errors.New("trailing session bytes")
	}

	return s, nil
}

func writeInt64(buf *bytes.Buffer, v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	buf.Write(b[:])
}

func writeString16(buf *bytes.Buffer, v string) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(len(v)))
	buf.Write(b[:])
	buf.WriteString(v)
}

func readString16(reader *bytes.Reader) (string, error) {
	var n uint16
	if err := binary.Read(reader, binary.BigEndian, &n); err != nil {
		return "", err
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(reader, out); err != nil {
		return "", err
	}
	return string(out), nil
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromUnixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
