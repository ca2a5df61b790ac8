package validation

// OCFL v1.1 spec codes referenced by the validators. Descriptions are the
// spec's rule text; see https://ocfl.io/1.1/spec/ for context.

func code(num, desc string) Code {
	return Code{Num: num, Desc: desc, URL: "https://ocfl.io/1.1/spec/#" + num}
}

var (
	E001 = code("E001", "The OCFL Object Root must not contain files or directories other than those specified in the following sections.")
	E003 = code("E003", "There must be exactly one version declaration file in the base directory of the OCFL Object Root giving the OCFL version in the filename.")
	E007 = code("E007", "The text contents of the version declaration file must be the same as dvalue, followed by a newline.")
	E008 = code("E008", "OCFL Object content must be stored as a sequence of one or more versions.")
	E009 = code("E009", "The version number sequence MUST start at 1 and must be continuous without missing integers.")
	E010 = code("E010", "The version number sequence must start at 1 and MUST be continuous without missing integers.")
	E011 = code("E011", "If zero-padded version directory numbers are used then they must start with the prefix v and then a zero.")
	E015 = code("E015", "There must be no other files as children of a version directory, other than an inventory file and an inventory digest.")
	E016 = code("E016", "Version directories must contain a designated content sub-directory if the version contains files to be preserved.")
	E022 = code("E022", "OCFL-compliant tools must ignore all directories in the object version directory except for the designated content directory.")
	E023 = code("E023", "Every file within a version's content directory must be referenced in the manifest section of the inventory.")
	E046 = code("E046", "The keys of the versions object must correspond to the names of the version directories used.")
	E058 = code("E058", "Every occurrence of an inventory file must have an accompanying sidecar file stating its digest.")
	E063 = code("E063", "Every OCFL object must have an inventory file within the OCFL Object Root, corresponding to the state of the latest version.")
	E092 = code("E092", "The content path digests in the manifest must match the digests of the files at those paths.")
	E093 = code("E093", "Where included in the fixity block, the digest values given must match the digests of the files at the corresponding content paths.")

	W001 = code("W001", "Implementations SHOULD use version directory names constructed without zero-padding the version number.")
	W010 = code("W010", "Every version directory SHOULD include an inventory file for versions up to and including that version.")
	W012 = code("W012", "Implementers SHOULD use the logs directory, if present, for storing files that contain a record of actions taken on the object.")
)
