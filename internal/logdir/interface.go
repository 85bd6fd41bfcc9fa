package logdir

// Kind tags a source file with the log format family it belongs to. The set
// is closed: the controller vendor fixes the formats and they change rarely.
type Kind string

const (
	KindStatus      Kind = "status"
	KindChannelTemp Kind = "channel_t"
	KindChannelRes  Kind = "channel_r"
	KindFlowmeter   Kind = "flowmeter"
	KindHeaters     Kind = "heaters"
	KindChannels    Kind = "channels"
	KindMaxigauge   Kind = "maxigauge"
)

// SourceFile is a single parser-eligible log file inside a date folder.
// Channel files are discovered by filename pattern at runtime; everything
// else has a fixed name derived from the date.
type SourceFile struct {
	Kind    Kind
	Name    string
	Path    string
	Channel int  // sensor channel number, 0 unless Kind is channel_t/channel_r
	Dynamic bool // discovered by pattern rather than fixed name
}
