package service

var ResolveLinkViolation = resolveLinkViolation
