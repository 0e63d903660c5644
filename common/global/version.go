package global

const Version = "1.4.0"
