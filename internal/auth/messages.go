// Package auth holds the registration, sign-in and profile rules: field
// validators, uniqueness probes, the password and nickname generators and
// the flows that write users to the store.
package auth

// Message is a user-facing validation message. It implements error so a
// validator can return it directly and callers can match it with errors.Is.
type Message string

func (m Message) Error() string { return string(m) }

const (
	MsgRequired     Message = "This field is required."
	MsgNameTooShort Message = "Enter at least 2 characters."

	MsgPhoneInvalid Message = "Enter a valid Belarus phone number (+375 XX XXX-XX-XX)."

	MsgEmailRequired   Message = "Email is required."
	MsgEmailInvalid    Message = "Enter a valid email address."
	MsgEmailTaken      Message = "This email is already registered."
	MsgEmailUnverified Message = "Unable to verify email. Try again later."

	MsgDOBRequired Message = "Select your birth date."
	MsgDOBInvalid  Message = "Enter a valid date."
	MsgDOBTooYoung Message = "Registration is available from 16 years old."

	MsgPasswordRequired Message = "Enter a password."
	MsgPasswordLength   Message = "Password must be 8-20 characters."
	MsgPasswordClasses  Message = "Add upper, lower, digit and special characters."
	MsgPasswordCommon   Message = "Password is too common. Choose another one."
	MsgConfirmRequired  Message = "Repeat the password."
	MsgConfirmMismatch  Message = "Passwords do not match."

	MsgNicknameRequired   Message = "Enter a nickname."
	MsgNicknameFormat     Message = "Use 3-24 chars: letters, numbers and underscore. Start with a letter."
	MsgNicknameTaken      Message = "Nickname already taken."
	MsgNicknameUnverified Message = "Unable to verify nickname."
	MsgNicknameMissing    Message = "Generate a nickname or use manual entry."
	MsgNicknameExists     Message = "Nickname already exists. Try again."
	MsgNicknameExhausted  Message = "Unable to generate a unique nickname. Please enter one manually."

	MsgAgreementRequired Message = "You must accept the user agreement."

	MsgLoginEmail    Message = "Enter a valid email."
	MsgLoginPassword Message = "Enter your password."
	MsgLoginFailed   Message = "Invalid email or password."
)
