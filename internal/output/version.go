package output

// SchemaVersion is the version of the NDJSON documents emitted by the
// informational commands (config, doctor, version). ErrorRecords written by
// the forwarder are not versioned.
const SchemaVersion = 1
