package time

import (
	"time"
)

// TimeStamp is a millisecond unix timestamp, the time representation used
// for persisted records such as receipts.
type TimeStamp int64

func Now() TimeStamp {
	return TimeToTimeStamp(time.Now().UTC())
}

func Int64MilliSecondsToTimeStamp(milliSec int64) TimeStamp {
	return TimeStamp(milliSec)
}

func TimeToTimeStamp(t time.Time) TimeStamp {
	return TimeStamp(t.UnixNano() / int64(time.Millisecond))
}

func (ts TimeStamp) Unix() int64 {
	return ts.UnixMilli() / 1e3
}

func (ts TimeStamp) UnixMilli() int64 {
	return int64(ts)
}

func (ts TimeStamp) UTC() time.Time {
	return time.Unix(ts.Unix(), 0).UTC()
}

func (ts TimeStamp) Local() time.Time {
	return time.Unix(0, int64(ts)*int64(time.Millisecond)).Local()
}

func (ts TimeStamp) After(t TimeStamp) bool {
	return ts > t
}

func (ts TimeStamp) SinceSeconds(t TimeStamp) int64 {
	return int64(ts-t) / 1e3
}

func (ts TimeStamp) SinceMilliSeconds(t TimeStamp) int64 {
	return int64(ts - t)
}

func (ts TimeStamp) AddSeconds(sec int64) TimeStamp {
	return ts + TimeStamp(sec*1e3)
}

func (ts TimeStamp) AddMilliSeconds(milliSec int64) TimeStamp {
	return ts + TimeStamp(milliSec)
}

func (ts TimeStamp) String() string {
	return ts.Local().String()
}
