package bridge

// Version is reported to clients that send the version command.
const Version = "0.6.0"
